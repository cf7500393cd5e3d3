package services

import (
	"context"
	"time"

	"github.com/KHNEATH/startwise-sub000/internal/repositories"
	"github.com/KHNEATH/startwise-sub000/internal/utils"

	"golang.org/x/sync/errgroup"
)

const recentLimit = 5

type RoleCount struct {
	Role  string `json:"role"`
	Count int    `json:"count"`
}

type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type UserStats struct {
	Total       int                       `json:"total"`
	NewToday    int                       `json:"newToday"`
	NewThisWeek int                       `json:"newThisWeek"`
	ByRole      []RoleCount               `json:"byRole"`
	Recent      []repositories.UserRecord `json:"recent"`
}

type JobStats struct {
	Total       int                      `json:"total"`
	Active      int                      `json:"active"`
	PostedToday int                      `json:"postedToday"`
	ByType      []TypeCount              `json:"byType"`
	Recent      []repositories.JobRecord `json:"recent"`
}

type ApplicationStats struct {
	Total    int                              `json:"total"`
	Today    int                              `json:"today"`
	ByStatus []StatusCount                    `json:"byStatus"`
	Recent   []repositories.ApplicationRecord `json:"recent"`
}

// DashboardSummary is the admin overview. It is recomputed on every request
// and never persisted.
type DashboardSummary struct {
	Users        UserStats        `json:"users"`
	Jobs         JobStats         `json:"jobs"`
	Applications ApplicationStats `json:"applications"`
}

// DashboardService assembles the cross-entity counters for the admin
// overview. Sub-queries run concurrently and are not wrapped in a
// transaction; a row inserted mid-computation may skew one counter against
// another. That is acceptable for a monitoring view. Any sub-query failure
// fails the whole aggregation.
type DashboardService struct {
	Users        repositories.UserRepository
	Jobs         repositories.JobRepository
	Applications repositories.ApplicationRepository
	Now          func() time.Time
}

func (s DashboardService) Summary(ctx context.Context) (DashboardSummary, error) {
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	today := utils.StartOfDay(now)
	weekAgo := utils.StartOfWeek(now)

	var out DashboardSummary
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		out.Users.Total, err = s.Users.CountAll(ctx)
		return
	})
	g.Go(func() (err error) {
		out.Users.NewToday, err = s.Users.CountCreatedSince(ctx, today)
		return
	})
	g.Go(func() (err error) {
		out.Users.NewThisWeek, err = s.Users.CountCreatedSince(ctx, weekAgo)
		return
	})
	g.Go(func() error {
		dims, err := s.Users.CountByRole(ctx)
		if err != nil {
			return err
		}
		out.Users.ByRole = make([]RoleCount, len(dims))
		for i, d := range dims {
			out.Users.ByRole[i] = RoleCount{Role: d.Value, Count: d.Count}
		}
		return nil
	})
	g.Go(func() (err error) {
		out.Users.Recent, err = s.Users.Recent(ctx, recentLimit)
		return
	})

	g.Go(func() (err error) {
		out.Jobs.Total, err = s.Jobs.CountAll(ctx)
		return
	})
	g.Go(func() (err error) {
		out.Jobs.Active, err = s.Jobs.CountByStatusValue(ctx, "active")
		return
	})
	g.Go(func() (err error) {
		out.Jobs.PostedToday, err = s.Jobs.CountCreatedSince(ctx, today)
		return
	})
	g.Go(func() error {
		dims, err := s.Jobs.CountByType(ctx)
		if err != nil {
			return err
		}
		out.Jobs.ByType = make([]TypeCount, len(dims))
		for i, d := range dims {
			out.Jobs.ByType[i] = TypeCount{Type: d.Value, Count: d.Count}
		}
		return nil
	})
	g.Go(func() (err error) {
		out.Jobs.Recent, err = s.Jobs.Recent(ctx, recentLimit)
		return
	})

	g.Go(func() (err error) {
		out.Applications.Total, err = s.Applications.CountAll(ctx)
		return
	})
	g.Go(func() (err error) {
		out.Applications.Today, err = s.Applications.CountCreatedSince(ctx, today)
		return
	})
	g.Go(func() error {
		dims, err := s.Applications.CountByStatus(ctx)
		if err != nil {
			return err
		}
		out.Applications.ByStatus = make([]StatusCount, len(dims))
		for i, d := range dims {
			out.Applications.ByStatus[i] = StatusCount{Status: d.Value, Count: d.Count}
		}
		return nil
	})
	g.Go(func() (err error) {
		out.Applications.Recent, err = s.Applications.Recent(ctx, recentLimit)
		return
	})

	if err := g.Wait(); err != nil {
		return DashboardSummary{}, err
	}
	return out, nil
}
