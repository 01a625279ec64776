package server

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jaajung-kjs/digital-sub000/internal/api"
	"github.com/jaajung-kjs/digital-sub000/internal/floorplan"
	"github.com/jaajung-kjs/digital-sub000/internal/typeid"
)

var (
	ErrNotFound          = errors.New("plan not found")
	ErrPlanExists        = errors.New("floor already has a plan")
	ErrDuplicateRackName = errors.New("rack name already in use")
)

// Service owns plan lifecycle: creation with defaults, full-state saves with
// id assignment, deletion. It translates storage errors into the sentinels
// the handler maps onto HTTP statuses.
type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// UpdateRequest is a full-state save. The deleted id sets are part of the
// wire contract but carry no extra information here: a save replaces the
// plan's children wholesale, so anything absent from the payload is gone.
type UpdateRequest struct {
	Plan              api.PlanDTO
	DeletedElementIDs []string
	DeletedRackIDs    []string
}

// GetByFloor returns the floor's plan or ErrNotFound.
func (s *Service) GetByFloor(ctx context.Context, floorID string) (api.PlanDTO, error) {
	dto, err := s.store.PlanByFloor(ctx, floorID)
	if errors.Is(err, pgx.ErrNoRows) {
		return api.PlanDTO{}, ErrNotFound
	}
	return dto, err
}

// GetByID returns the plan or ErrNotFound.
func (s *Service) GetByID(ctx context.Context, planID string) (api.PlanDTO, error) {
	dto, err := s.store.PlanByID(ctx, planID)
	if errors.Is(err, pgx.ErrNoRows) {
		return api.PlanDTO{}, ErrNotFound
	}
	return dto, err
}

// Create makes an empty plan for a floor. A floor holds at most one plan;
// a second create returns ErrPlanExists.
func (s *Service) Create(ctx context.Context, floorID, name string) (api.PlanDTO, error) {
	if strings.TrimSpace(name) == "" {
		name = "Untitled plan"
	}
	dto := api.PlanDTO{
		ID:              typeid.NewPlanID(),
		FloorID:         floorID,
		Name:            name,
		CanvasWidth:     floorplan.DefaultCanvasWidth,
		CanvasHeight:    floorplan.DefaultCanvasHeight,
		GridSize:        floorplan.DefaultGridSize,
		BackgroundColor: floorplan.DefaultBackground,
		Version:         1,
		Elements:        []api.ElementDTO{},
		Racks:           []api.RackDTO{},
	}
	if err := s.store.InsertPlan(ctx, dto); err != nil {
		if isDuplicateKeyError(err) {
			return api.PlanDTO{}, ErrPlanExists
		}
		return api.PlanDTO{}, err
	}
	return dto, nil
}

// Update replaces the plan's state with the payload. New elements and racks
// arrive without ids and get server-assigned ones; the response keeps the
// payload order so the client can match assignments positionally. The
// version counter bumps on every save.
func (s *Service) Update(ctx context.Context, planID string, req UpdateRequest) (api.PlanDTO, error) {
	current, err := s.store.PlanByID(ctx, planID)
	if errors.Is(err, pgx.ErrNoRows) {
		return api.PlanDTO{}, ErrNotFound
	}
	if err != nil {
		return api.PlanDTO{}, err
	}

	if name, dup := duplicateRackName(req.Plan.Racks); dup {
		return api.PlanDTO{}, fmt.Errorf("%w: %s", ErrDuplicateRackName, name)
	}

	dto := req.Plan
	dto.ID = planID
	dto.FloorID = current.FloorID
	dto.Version = current.Version + 1
	if dto.Elements == nil {
		dto.Elements = []api.ElementDTO{}
	}
	if dto.Racks == nil {
		dto.Racks = []api.RackDTO{}
	}
	for i := range dto.Elements {
		if dto.Elements[i].ID == nil {
			id := typeid.NewElementID()
			dto.Elements[i].ID = &id
		}
	}
	for i := range dto.Racks {
		if dto.Racks[i].ID == nil {
			id := typeid.NewRackID()
			dto.Racks[i].ID = &id
		}
	}

	if err := s.store.ReplacePlan(ctx, dto); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return api.PlanDTO{}, ErrNotFound
		}
		if isDuplicateKeyError(err) {
			return api.PlanDTO{}, ErrDuplicateRackName
		}
		return api.PlanDTO{}, err
	}
	return dto, nil
}

// Delete removes the plan and everything in it.
func (s *Service) Delete(ctx context.Context, planID string) error {
	err := s.store.DeletePlan(ctx, planID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// duplicateRackName finds the first name that appears twice in the payload,
// ignoring case. The unique index on (plan_id, lower(name)) backs this up.
func duplicateRackName(racks []api.RackDTO) (string, bool) {
	seen := make(map[string]struct{}, len(racks))
	for _, r := range racks {
		key := strings.ToLower(r.Name)
		if _, dup := seen[key]; dup {
			return r.Name, true
		}
		seen[key] = struct{}{}
	}
	return "", false
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" // unique_violation
}
