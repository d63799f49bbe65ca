package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/omchoksi/talentscout/internal/conversation"
)

// CandidateProfile is a stored candidate summary.
type CandidateProfile struct {
	ID              int64                   `json:"id"`
	SessionID       string                  `json:"session_id"`
	Name            string                  `json:"name"`
	ExperienceYears float64                 `json:"experience_years"`
	ExperienceRaw   string                  `json:"experience_raw"`
	Position        string                  `json:"position"`
	TechStack       []string                `json:"tech_stack"`
	SkillsExtracted []string                `json:"skills_extracted"`
	CompetencyLevel string                  `json:"competency_level"`
	TechnicalAnswer string                  `json:"technical_answer"`
	Assessment      conversation.Assessment `json:"ai_assessment"`
	CreatedAt       time.Time               `json:"created_at"`
}

// SaveProfile inserts a derived candidate profile. Profiles are write-once;
// there is no update path.
func (db *DB) SaveProfile(ctx context.Context, profile conversation.Profile) error {
	techStack, err := json.Marshal(profile.TechStack)
	if err != nil {
		return fmt.Errorf("failed to encode tech stack: %w", err)
	}
	skills, err := json.Marshal(profile.SkillsExtracted)
	if err != nil {
		return fmt.Errorf("failed to encode skills: %w", err)
	}
	assessment, err := json.Marshal(profile.Assessment)
	if err != nil {
		return fmt.Errorf("failed to encode assessment: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO candidate_profiles
		 (session_id, name, experience_years, experience_raw, position,
		  tech_stack, skills_extracted, competency_level, technical_answer, ai_assessment)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		profile.SessionID, profile.Name, profile.ExperienceYears, profile.ExperienceRaw,
		profile.Position, techStack, skills, string(profile.CompetencyLevel),
		profile.TechnicalAnswer, assessment,
	)
	if err != nil {
		return fmt.Errorf("failed to save candidate profile: %w", err)
	}
	return nil
}

// GetProfile retrieves the candidate profile for a session, or nil when none
// exists.
func (db *DB) GetProfile(ctx context.Context, sessionID string) (*CandidateProfile, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT id, session_id, name, experience_years, experience_raw, position,
		        tech_stack, skills_extracted, competency_level, technical_answer,
		        ai_assessment, created_at
		 FROM candidate_profiles WHERE session_id = $1
		 ORDER BY created_at DESC LIMIT 1`,
		sessionID,
	)

	profile, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get candidate profile: %w", err)
	}
	return profile, nil
}

// ListProfiles returns candidate profiles, newest first.
func (db *DB) ListProfiles(ctx context.Context, limit int) ([]CandidateProfile, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, session_id, name, experience_years, experience_raw, position,
		        tech_stack, skills_extracted, competency_level, technical_answer,
		        ai_assessment, created_at
		 FROM candidate_profiles ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidate profiles: %w", err)
	}
	defer rows.Close()

	var profiles []CandidateProfile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan candidate profile: %w", err)
		}
		profiles = append(profiles, *profile)
	}
	return profiles, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*CandidateProfile, error) {
	var p CandidateProfile
	var techStack, skills, assessment []byte

	err := row.Scan(&p.ID, &p.SessionID, &p.Name, &p.ExperienceYears, &p.ExperienceRaw,
		&p.Position, &techStack, &skills, &p.CompetencyLevel, &p.TechnicalAnswer,
		&assessment, &p.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(techStack, &p.TechStack); err != nil {
		return nil, fmt.Errorf("failed to decode tech stack: %w", err)
	}
	if err := json.Unmarshal(skills, &p.SkillsExtracted); err != nil {
		return nil, fmt.Errorf("failed to decode skills: %w", err)
	}
	if err := json.Unmarshal(assessment, &p.Assessment); err != nil {
		return nil, fmt.Errorf("failed to decode assessment: %w", err)
	}
	return &p, nil
}
