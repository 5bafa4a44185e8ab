// Package seed provides helpers to create demo and test data for the
// engine database. These helpers are intended for development and testing
// only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"lattice/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

var (
	roleTagPool = []string{
		"engineer", "designer", "product manager", "founder", "recruiter",
		"data scientist", "researcher", "marketer", "sales", "consultant",
		"devops", "security engineer", "analyst", "writer", "investor",
	}

	domainTagPool = []string{
		"fintech", "healthtech", "security", "infrastructure", "ai",
		"gaming", "media", "logistics", "education", "climate",
		"e-commerce", "developer tools", "biotech", "robotics",
	}

	collaborationEvidence = []string{
		"Shipped a product launch together",
		"Co-authored a conference talk",
		"Worked on the same platform team",
		"Paired on an incident postmortem",
		"Ran a joint customer pilot",
	}
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{db: db, r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// CreateProfile constructs and persists a sample profile. Optional override
// functions may modify the generated profile before saving.
func (f *Factory) CreateProfile(overrides ...func(*models.Profile)) (*models.Profile, error) {
	profile := &models.Profile{
		DisplayName: gofakeit.Name(),
		Headline:    fmt.Sprintf("%s at %s", gofakeit.JobTitle(), gofakeit.Company()),
		PhotoURL:    fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		RoleTags:    pickTags(f.r, roleTagPool, 1, 2),
		DomainTags:  pickTags(f.r, domainTagPool, 1, 3),
	}

	for _, override := range overrides {
		override(profile)
	}

	if err := f.db.Create(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

// CreateEdge persists an active edge between two profiles with plausible
// strength and trust, created at a random point in the recent past.
func (f *Factory) CreateEdge(fromID, toID uint, overrides ...func(*models.NetworkEdge)) (*models.NetworkEdge, error) {
	lastInteraction := time.Now().Add(-time.Duration(f.r.Intn(60*24)) * time.Hour)
	edge := &models.NetworkEdge{
		FromProfileID:     fromID,
		ToProfileID:       toID,
		EdgeType:          models.EdgeTypeDirect,
		Context:           models.EdgeContextGeneral,
		Strength:          0.3 + f.r.Float64()*0.6,
		Trust:             models.DefaultEdgeTrust,
		Status:            models.EdgeStatusActive,
		LastInteractionAt: &lastInteraction,
	}
	edge.CreatedAt = time.Now().Add(-time.Duration(f.r.Intn(365*24)) * time.Hour)

	for _, override := range overrides {
		override(edge)
	}

	if err := f.db.Create(edge).Error; err != nil {
		return nil, err
	}
	return edge, nil
}

// CreateSignal appends a trust signal to an edge.
func (f *Factory) CreateSignal(edgeID uint, signalType models.SignalType, weight float64, evidence string) (*models.TrustSignal, error) {
	signal := &models.TrustSignal{
		EdgeID:     edgeID,
		SignalType: signalType,
		Weight:     weight,
		Evidence:   evidence,
	}
	if err := f.db.Create(signal).Error; err != nil {
		return nil, err
	}
	return signal, nil
}

// CreatePendingRequest persists a pending connection request with its TTL set.
func (f *Factory) CreatePendingRequest(fromID, toID uint) (*models.ConnectionRequest, error) {
	request := &models.ConnectionRequest{
		RequestType:   models.RequestTypeDirect,
		FromProfileID: fromID,
		ToProfileID:   toID,
		Message:       gofakeit.Sentence(8),
		Status:        models.RequestStatusPending,
		ExpiresAt:     time.Now().Add(models.RequestTTL),
	}
	if err := f.db.Create(request).Error; err != nil {
		return nil, err
	}
	return request, nil
}

func pickTags(r *rand.Rand, pool []string, min, max int) string {
	n := min
	if max > min {
		n += r.Intn(max - min + 1)
	}
	picked := make([]string, 0, n)
	seen := make(map[int]struct{}, n)
	for len(picked) < n {
		i := r.Intn(len(pool))
		if _, ok := seen[i]; ok {
			continue
		}
		seen[i] = struct{}{}
		picked = append(picked, pool[i])
	}
	return strings.Join(picked, ", ")
}
