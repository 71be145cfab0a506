// Command lead-rescore re-runs qualification for every stored lead. Run it
// after replacing a scoring configuration to bring historical scores in line
// with the new rule set.
package main

import (
	"context"
	"flag"
	"sync/atomic"
	"time"

	"qualifica_backend/internal/qualification"
	"qualifica_backend/platform/config"
	"qualifica_backend/platform/db"
	"qualifica_backend/platform/logger"
	"qualifica_backend/platform/validator"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

type leadRef struct {
	id        uuid.UUID
	tenantID  uuid.UUID
	createdAt time.Time
}

func main() {
	tenantFlag := flag.String("tenant", "", "restrict the rescore to a single tenant UUID")
	concurrency := flag.Int("concurrency", 4, "number of leads rescored in parallel")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting lead rescore")

	var tenantFilter *uuid.UUID
	if *tenantFlag != "" {
		parsed, err := uuid.Parse(*tenantFlag)
		if err != nil {
			panic("invalid -tenant value: " + err.Error())
		}
		tenantFilter = &parsed
	}

	ctx := context.Background()
	pools, err := db.NewPools(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pools.Close()

	// No event bus: a backfill must not fan out assignment emails.
	module := qualification.NewModule(pools, nil, validator.New(), cfg, log)
	svc := module.Service()

	const batchSize = 100

	var processed, succeeded atomic.Int64

	cursorTime := time.Time{}
	cursorID := uuid.Nil

	for {
		leads, err := listLeads(ctx, pools.Trusted, batchSize, cursorTime, cursorID, tenantFilter)
		if err != nil {
			log.Error("failed to list leads", "error", err)
			break
		}
		if len(leads) == 0 {
			break
		}

		cursorTime = leads[len(leads)-1].createdAt
		cursorID = leads[len(leads)-1].id

		group, groupCtx := errgroup.WithContext(ctx)
		group.SetLimit(*concurrency)
		for _, lead := range leads {
			lead := lead
			group.Go(func() error {
				processed.Add(1)

				runCtx, cancel := context.WithTimeout(groupCtx, 20*time.Second)
				defer cancel()

				if _, err := svc.Requalify(runCtx, lead.id, lead.tenantID); err != nil {
					log.Error("failed to rescore lead", "leadId", lead.id, "tenantId", lead.tenantID, "error", err)
					return nil
				}
				succeeded.Add(1)
				return nil
			})
		}
		if err := group.Wait(); err != nil {
			log.Error("rescore batch aborted", "error", err)
			break
		}
	}

	log.Info("lead rescore completed", "processed", processed.Load(), "updated", succeeded.Load())
}

func listLeads(ctx context.Context, pool *pgxpool.Pool, limit int, cursorTime time.Time, cursorID uuid.UUID, tenantFilter *uuid.UUID) ([]leadRef, error) {
	rows, err := pool.Query(ctx, `
    SELECT id, tenant_id, created_at
    FROM leads
    WHERE (created_at > $1 OR (created_at = $1 AND id > $2))
      AND ($3::uuid IS NULL OR tenant_id = $3)
    ORDER BY created_at ASC, id ASC
    LIMIT $4
  `, cursorTime, cursorID, tenantFilter, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := make([]leadRef, 0)
	for rows.Next() {
		var lead leadRef
		if err := rows.Scan(&lead.id, &lead.tenantID, &lead.createdAt); err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}

	return leads, rows.Err()
}
