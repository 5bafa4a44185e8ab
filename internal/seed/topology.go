package seed

import (
	_ "embed"
	"fmt"
	"strings"
	"time"

	"lattice/internal/models"
	"lattice/internal/trust"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed demo_topology.yml
var demoTopologyYAML []byte

// demoTopology is the shape of the embedded demo network definition.
type demoTopology struct {
	Profiles []demoProfile `yaml:"profiles"`
	Edges    []demoEdge    `yaml:"edges"`
}

type demoProfile struct {
	Name       string `yaml:"name"`
	Headline   string `yaml:"headline"`
	RoleTags   string `yaml:"role_tags"`
	DomainTags string `yaml:"domain_tags"`
}

type demoEdge struct {
	From     string       `yaml:"from"`
	To       string       `yaml:"to"`
	Strength float64      `yaml:"strength"`
	Signals  []demoSignal `yaml:"signals"`
}

type demoSignal struct {
	Type     string  `yaml:"type"`
	Weight   float64 `yaml:"weight"`
	Evidence string  `yaml:"evidence"`
}

// DemoNetwork seeds the fixed demo topology embedded in the binary. It is
// idempotent: profiles are matched by display name and existing edges are
// left alone, so it can run on every startup in development.
func DemoNetwork(db *gorm.DB) error {
	var topo demoTopology
	if err := yaml.Unmarshal(demoTopologyYAML, &topo); err != nil {
		return fmt.Errorf("parse demo topology: %w", err)
	}

	byName := make(map[string]uint, len(topo.Profiles))
	for _, dp := range topo.Profiles {
		profile := models.Profile{
			DisplayName: dp.Name,
			Headline:    dp.Headline,
			RoleTags:    dp.RoleTags,
			DomainTags:  dp.DomainTags,
		}
		if err := db.Where("display_name = ?", dp.Name).
			FirstOrCreate(&profile).Error; err != nil {
			return fmt.Errorf("seed demo profile %s: %w", dp.Name, err)
		}
		byName[dp.Name] = profile.ID
	}

	now := time.Now()
	for _, de := range topo.Edges {
		fromID, ok := byName[de.From]
		if !ok {
			return fmt.Errorf("demo edge references unknown profile %q", de.From)
		}
		toID, ok := byName[de.To]
		if !ok {
			return fmt.Errorf("demo edge references unknown profile %q", de.To)
		}

		var count int64
		if err := db.Model(&models.NetworkEdge{}).
			Where("(from_profile_id = ? AND to_profile_id = ?) OR (from_profile_id = ? AND to_profile_id = ?)",
				fromID, toID, toID, fromID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			edge := models.NetworkEdge{
				FromProfileID: fromID,
				ToProfileID:   toID,
				EdgeType:      models.EdgeTypeDirect,
				Context:       models.EdgeContextGeneral,
				Strength:      de.Strength,
				Trust:         models.DefaultEdgeTrust,
				Status:        models.EdgeStatusActive,
			}
			if err := tx.Create(&edge).Error; err != nil {
				return err
			}

			signals := make([]models.TrustSignal, 0, len(de.Signals))
			for _, ds := range de.Signals {
				signal := models.TrustSignal{
					EdgeID:     edge.ID,
					SignalType: models.SignalType(strings.TrimSpace(ds.Type)),
					Weight:     ds.Weight,
					Evidence:   ds.Evidence,
				}
				if err := tx.Create(&signal).Error; err != nil {
					return err
				}
				signals = append(signals, signal)
			}

			score := trust.RecomputeEdgeTrustAt(now, signals, edge.Trust)
			return tx.Model(&models.NetworkEdge{}).
				Where("id = ?", edge.ID).
				Update("trust", score).Error
		})
		if err != nil {
			return fmt.Errorf("seed demo edge %s -> %s: %w", de.From, de.To, err)
		}
	}

	return nil
}
