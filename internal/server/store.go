// Package server is the persistence side of the plan service: postgres
// storage, save/replace semantics and the HTTP surface the editor client
// talks to.
package server

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jaajung-kjs/digital-sub000/internal/api"
)

// Store runs the plan queries against postgres. Element properties are
// stored as opaque JSONB; the server never interprets shape payloads.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// PlanByFloor loads the plan attached to a floor, children included.
func (s *Store) PlanByFloor(ctx context.Context, floorID string) (api.PlanDTO, error) {
	return s.loadPlan(ctx,
		`SELECT id, floor_id, name, canvas_width, canvas_height, grid_size, background, version
		 FROM plans WHERE floor_id = $1`, floorID)
}

// PlanByID loads a plan by its own id, children included.
func (s *Store) PlanByID(ctx context.Context, planID string) (api.PlanDTO, error) {
	return s.loadPlan(ctx,
		`SELECT id, floor_id, name, canvas_width, canvas_height, grid_size, background, version
		 FROM plans WHERE id = $1`, planID)
}

func (s *Store) loadPlan(ctx context.Context, query, arg string) (api.PlanDTO, error) {
	var dto api.PlanDTO
	err := s.pool.QueryRow(ctx, query, arg).Scan(
		&dto.ID, &dto.FloorID, &dto.Name,
		&dto.CanvasWidth, &dto.CanvasHeight, &dto.GridSize,
		&dto.BackgroundColor, &dto.Version)
	if err != nil {
		return api.PlanDTO{}, err
	}

	if dto.Elements, err = s.loadElements(ctx, dto.ID); err != nil {
		return api.PlanDTO{}, fmt.Errorf("load elements: %w", err)
	}
	if dto.Racks, err = s.loadRacks(ctx, dto.ID); err != nil {
		return api.PlanDTO{}, fmt.Errorf("load racks: %w", err)
	}
	return dto, nil
}

func (s *Store) loadElements(ctx context.Context, planID string) ([]api.ElementDTO, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, element_type, properties, z_index, is_visible, is_locked
		 FROM plan_elements WHERE plan_id = $1 ORDER BY sort_order`, planID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []api.ElementDTO{}
	for rows.Next() {
		var (
			id      string
			visible bool
			el      api.ElementDTO
		)
		if err := rows.Scan(&id, &el.ElementType, &el.Properties, &el.ZIndex, &visible, &el.IsLocked); err != nil {
			return nil, err
		}
		el.ID = &id
		el.IsVisible = &visible
		out = append(out, el)
	}
	return out, rows.Err()
}

func (s *Store) loadRacks(ctx context.Context, planID string) ([]api.RackDTO, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, position_x, position_y, width, height, rotation, total_u, code, description, image_refs
		 FROM plan_racks WHERE plan_id = $1 ORDER BY sort_order`, planID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []api.RackDTO{}
	for rows.Next() {
		var (
			id string
			r  api.RackDTO
		)
		if err := rows.Scan(&id, &r.Name, &r.PositionX, &r.PositionY, &r.Width, &r.Height,
			&r.Rotation, &r.TotalU, &r.Code, &r.Description, &r.ImageRefs); err != nil {
			return nil, err
		}
		r.ID = &id
		out = append(out, r)
	}
	return out, rows.Err()
}

// InsertPlan creates the plan header row. Children are written by
// ReplacePlan on the first save.
func (s *Store) InsertPlan(ctx context.Context, dto api.PlanDTO) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO plans (id, floor_id, name, canvas_width, canvas_height, grid_size, background, version)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		dto.ID, dto.FloorID, dto.Name,
		dto.CanvasWidth, dto.CanvasHeight, dto.GridSize,
		dto.BackgroundColor, dto.Version)
	return err
}

// ReplacePlan writes the full plan state in one transaction: header updated,
// children deleted and re-inserted in payload order. Every element and rack
// id must already be assigned. Returns pgx.ErrNoRows for an unknown plan id.
func (s *Store) ReplacePlan(ctx context.Context, dto api.PlanDTO) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE plans SET name = $2, canvas_width = $3, canvas_height = $4, grid_size = $5,
		 background = $6, version = $7, updated_at = now() WHERE id = $1`,
		dto.ID, dto.Name, dto.CanvasWidth, dto.CanvasHeight, dto.GridSize,
		dto.BackgroundColor, dto.Version)
	if err != nil {
		return fmt.Errorf("update plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	if _, err := tx.Exec(ctx, `DELETE FROM plan_elements WHERE plan_id = $1`, dto.ID); err != nil {
		return fmt.Errorf("clear elements: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM plan_racks WHERE plan_id = $1`, dto.ID); err != nil {
		return fmt.Errorf("clear racks: %w", err)
	}

	for i, el := range dto.Elements {
		visible := el.IsVisible == nil || *el.IsVisible
		if _, err := tx.Exec(ctx,
			`INSERT INTO plan_elements (id, plan_id, element_type, properties, z_index, is_visible, is_locked, sort_order)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			*el.ID, dto.ID, el.ElementType, el.Properties, el.ZIndex, visible, el.IsLocked, i); err != nil {
			return fmt.Errorf("insert element: %w", err)
		}
	}
	for i, r := range dto.Racks {
		refs := r.ImageRefs
		if refs == nil {
			refs = []string{}
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO plan_racks (id, plan_id, name, position_x, position_y, width, height, rotation, total_u, code, description, image_refs, sort_order)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
			*r.ID, dto.ID, r.Name, r.PositionX, r.PositionY, r.Width, r.Height,
			r.Rotation, r.TotalU, r.Code, r.Description, refs, i); err != nil {
			return fmt.Errorf("insert rack %q: %w", r.Name, err)
		}
	}

	return tx.Commit(ctx)
}

// DeletePlan removes a plan and, through the schema's cascades, its children.
func (s *Store) DeletePlan(ctx context.Context, planID string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM plans WHERE id = $1`, planID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
