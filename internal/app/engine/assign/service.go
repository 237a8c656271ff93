// Package assign orchestrates assignment runs: it validates the request,
// loads the pool, invokes the partitioning engine, offsets room numbers so
// sibling scopes share one sequence, and commits the new settings version
// atomically while archiving the previous one.
package assign

import (
	"context"
	"math/rand"
	"time"

	"github.com/convohub/convohub/internal/app/store/participantstore"
	"github.com/convohub/convohub/internal/app/store/questionstore"
	"github.com/convohub/convohub/internal/app/store/queries/assignqueries"
	"github.com/convohub/convohub/internal/app/store/roomparticipantstore"
	"github.com/convohub/convohub/internal/app/store/roomstore"
	"github.com/convohub/convohub/internal/app/store/settingsstore"
	"github.com/convohub/convohub/internal/app/system/txn"
	"github.com/convohub/convohub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Service runs assignment runs against one database.
type Service struct {
	client       *mongo.Client
	db           *mongo.Database
	settings     *settingsstore.Store
	rooms        *roomstore.Store
	placements   *roomparticipantstore.Store
	participants *participantstore.Store
	questions    *questionstore.Store
	log          *zap.Logger

	// newRand supplies the random source for one run. Injectable so tests
	// can force a deterministic partition.
	newRand func() *rand.Rand
}

// Option configures a Service.
type Option func(*Service)

// WithRandSource overrides the per-run random source.
func WithRandSource(f func() *rand.Rand) Option {
	return func(s *Service) { s.newRand = f }
}

// NewService wires a Service over the given database.
func NewService(client *mongo.Client, db *mongo.Database, logger *zap.Logger, opts ...Option) *Service {
	s := &Service{
		client:       client,
		db:           db,
		settings:     settingsstore.New(db),
		rooms:        roomstore.New(db),
		placements:   roomparticipantstore.New(db),
		participants: participantstore.New(db),
		questions:    questionstore.New(db),
		log:          logger,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Weights combines the optimizer's two objective terms.
type Weights struct {
	Satisfaction  float64 `json:"satisfaction"`
	Heterogeneity float64 `json:"heterogeneity"`
}

// StratifiedRequest describes one stratified run.
type StratifiedRequest struct {
	ScopeID         primitive.ObjectID
	ParentScopeID   primitive.ObjectID
	RoomSize        int
	QuestionIDs     []string
	RequestedBy     string
	RequestedByName string
}

// OptimizedRequest describes one topic/spectrum run.
type OptimizedRequest struct {
	TopicScopeID  primitive.ObjectID
	ParentScopeID primitive.ObjectID
	MinRoomSize   int
	MaxRoomSize   int
	UseOptimizer  bool
	Weights       Weights

	// SolverTimeLimit bounds the optimizer attempt only; the fallback and
	// the commit run under the caller's context. Zero means no bound.
	SolverTimeLimit time.Duration

	RequestedBy     string
	RequestedByName string
}

// RoomSummary is one room in a run result.
type RoomSummary struct {
	RoomID           primitive.ObjectID `json:"room_id"`
	RoomNumber       int                `json:"room_number"`
	ParticipantCount int                `json:"participant_count"`
}

// RunResult is the uniform outcome of a committed run.
type RunResult struct {
	SettingsID        primitive.ObjectID `json:"settings_id"`
	TotalRooms        int                `json:"total_rooms"`
	TotalParticipants int                `json:"total_participants"`

	BalanceScore float64 `json:"balance_score,omitempty"`

	SatisfactionScore  float64 `json:"satisfaction_score,omitempty"`
	HeterogeneityScore float64 `json:"heterogeneity_score,omitempty"`
	SolverStatus       string  `json:"solver_status,omitempty"`

	Rooms []RoomSummary `json:"rooms"`
}

// parentOf defaults a missing parent scope to the scope itself, making a
// lone scope its own numbering domain.
func parentOf(scopeID, parentScopeID primitive.ObjectID) primitive.ObjectID {
	if parentScopeID.IsZero() {
		return scopeID
	}
	return parentScopeID
}

// numberingOffset snapshots the highest room number in use under a parent
// scope. The snapshot is read before the commit; see assignqueries for the
// race it tolerates.
func (s *Service) numberingOffset(ctx context.Context, parentScopeID primitive.ObjectID) (int, error) {
	offset, err := assignqueries.MaxActiveRoomNumber(ctx, s.db, parentScopeID)
	if err != nil {
		return 0, persistence("room numbering lookup failed", err)
	}
	return offset, nil
}

// commit writes one settings version and its rooms/placements while
// archiving the scope's previous active version, all in one transaction.
// Nothing is persisted before this point, so a failure here leaves no
// partial state to reconcile.
func (s *Service) commit(ctx context.Context, settings models.AssignmentSettings, rooms []models.Room, placements []models.RoomParticipant) error {
	degraded, err := txn.WithTransaction(ctx, s.client, func(tc context.Context) error {
		if _, err := s.settings.ArchiveActiveForScope(tc, settings.ScopeID, settings.ID); err != nil {
			return err
		}
		if err := s.settings.Insert(tc, settings); err != nil {
			return err
		}
		if err := s.rooms.InsertMany(tc, rooms); err != nil {
			return err
		}
		return s.placements.InsertMany(tc, placements)
	})
	if degraded {
		s.log.Warn("transactions unavailable, assignment committed without atomicity",
			zap.String("settings_id", settings.ID.Hex()))
	}
	if err != nil {
		return persistence("assignment commit failed", err)
	}
	return nil
}
