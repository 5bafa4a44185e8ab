// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"time"

	"lattice/internal/models"
	"lattice/internal/trust"

	"gorm.io/gorm"
)

// Seeder populates the engine database with demo data.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db)}
}

// ClearAll removes every engine record. Deletion order respects foreign keys.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")

	tables := []string{
		"interaction_feedback",
		"trust_signals",
		"connection_requests",
		"network_edges",
		"profiles",
	}
	for _, table := range tables {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

// SeedNetworkMesh creates numProfiles profiles and links them into a mesh:
// each profile connects to a handful of peers, connected edges accumulate
// trust signals, and a sprinkling of pending requests is left unanswered so
// request views have content.
func (s *Seeder) SeedNetworkMesh(numProfiles int) ([]models.Profile, error) {
	log.Printf("Seeding network mesh with %d profiles...", numProfiles)

	profiles := make([]models.Profile, 0, numProfiles)
	for i := 0; i < numProfiles; i++ {
		p, err := s.factory.CreateProfile()
		if err != nil {
			return nil, fmt.Errorf("create profile: %w", err)
		}
		profiles = append(profiles, *p)
	}

	// Connect each profile to 2-5 later peers. Pairing only forward keeps
	// the unordered-pair unique index satisfied without lookups.
	now := time.Now()
	edgeCount := 0
	signalCount := 0
	for i := range profiles {
		degree := 2 + s.factory.r.Intn(4)
		for d := 1; d <= degree && i+d < len(profiles); d++ {
			j := i + 1 + s.factory.r.Intn(len(profiles)-i-1)
			edge, err := s.factory.CreateEdge(profiles[i].ID, profiles[j].ID)
			if err != nil {
				// The random target may collide with an earlier pair; skip it.
				continue
			}
			edgeCount++

			signals, err := s.seedEdgeSignals(edge.ID)
			if err != nil {
				return nil, err
			}
			signalCount += len(signals)

			score := trust.RecomputeEdgeTrustAt(now, signals, edge.Trust)
			if err := s.db.Model(&models.NetworkEdge{}).
				Where("id = ?", edge.ID).
				Update("trust", score).Error; err != nil {
				return nil, fmt.Errorf("update edge trust: %w", err)
			}
		}
	}

	// Leave a few requests pending so inbox views are not empty.
	pending := 0
	for i := 0; i+7 < len(profiles); i += 7 {
		if _, err := s.factory.CreatePendingRequest(profiles[i].ID, profiles[i+7].ID); err != nil {
			continue
		}
		pending++
	}

	log.Printf("Seeded %d profiles, %d edges, %d signals, %d pending requests",
		len(profiles), edgeCount, signalCount, pending)
	return profiles, nil
}

// seedEdgeSignals attaches 0-3 plausible signals to an edge.
func (s *Seeder) seedEdgeSignals(edgeID uint) ([]models.TrustSignal, error) {
	type template struct {
		signalType models.SignalType
		weight     float64
		evidence   string
	}
	candidates := []template{
		{models.SignalCollaboration, 0.4 + s.factory.r.Float64()*0.5, collaborationEvidence[s.factory.r.Intn(len(collaborationEvidence))]},
		{models.SignalEndorsement, 0.5 + s.factory.r.Float64()*0.4, "Endorsed for domain expertise"},
		{models.SignalInteractionQuality, 0.3 + s.factory.r.Float64()*0.5, "Consistent responses over the last quarter"},
		{models.SignalFreshness, 0.4 + s.factory.r.Float64()*0.4, "Recent activity on the relationship"},
	}

	n := s.factory.r.Intn(4)
	signals := make([]models.TrustSignal, 0, n)
	for _, c := range candidates[:n] {
		signal, err := s.factory.CreateSignal(edgeID, c.signalType, c.weight, c.evidence)
		if err != nil {
			return nil, fmt.Errorf("create signal: %w", err)
		}
		signals = append(signals, *signal)
	}
	return signals, nil
}
