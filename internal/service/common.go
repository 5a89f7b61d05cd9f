package service

import (
	"strings"

	"github.com/spec-kit/listing-admin/internal/auth"
	"github.com/spec-kit/listing-admin/internal/events"
)

// MaxPageLimit bounds the page size and activity feed length a client may request.
const MaxPageLimit = 100

// PageParams carries the page, limit and search query parameters shared by admin listings.
type PageParams struct {
	Page   int
	Limit  int
	Search string
}

// PageInfo is the pagination block returned alongside list data.
type PageInfo struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

func (p PageParams) normalize() PageParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 10
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	p.Search = strings.TrimSpace(p.Search)
	return p
}

func (p PageParams) offset() int {
	return (p.Page - 1) * p.Limit
}

func newPageInfo(p PageParams, total int) PageInfo {
	return PageInfo{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: (total + p.Limit - 1) / p.Limit,
	}
}

// ActorFromClaims attributes admin events to the calling staff member, if any.
func ActorFromClaims(claims *auth.Claims) events.Actor {
	if claims == nil {
		return events.Actor{}
	}
	return events.Actor{StaffCode: claims.StaffID, Email: claims.Email}
}

// optional maps blank strings to NULL.
func optional(val string) *string {
	val = strings.TrimSpace(val)
	if val == "" {
		return nil
	}
	return &val
}

func blank(vals ...string) bool {
	for _, v := range vals {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}
