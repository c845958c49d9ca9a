package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tutorlens/tutorlens/internal/lib/analysis"
	"github.com/tutorlens/tutorlens/internal/repository"
)

// stubTopics serves canned topics by name and records score writes.
type stubTopics struct {
	byName  map[string]*repository.Topic
	lookup  map[string]error
	updates []int64
}

func (s *stubTopics) GetByName(_ context.Context, _ int64, name string) (*repository.Topic, error) {
	if err, ok := s.lookup[name]; ok {
		return nil, err
	}
	t, ok := s.byName[name]
	if !ok {
		return nil, fmt.Errorf("table:topics: %w", pgx.ErrNoRows)
	}
	return t, nil
}

func (s *stubTopics) UpdateScores(_ context.Context, id int64, _, _ float64) (*repository.Topic, error) {
	s.updates = append(s.updates, id)
	return &repository.Topic{ID: id}, nil
}

func TestApplyMasteryUpdates_skipsUnknownTopics(t *testing.T) {
	topics := &stubTopics{byName: map[string]*repository.Topic{
		"Fractions": {ID: 7, TopicName: "Fractions", MasteryScore: 50, ConfidenceScore: 50},
	}}
	updates := []analysis.MasteryUpdate{
		{Topic: "Fractions", Improvement: 0.3},
		{Topic: "Topology"},
	}

	updated, err := applyMasteryUpdates(context.Background(), topics, 1, updates)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated != 1 {
		t.Errorf("updated = %d, want 1", updated)
	}
	if len(topics.updates) != 1 || topics.updates[0] != 7 {
		t.Errorf("score writes = %v, want [7]", topics.updates)
	}
}

func TestApplyMasteryUpdates_propagatesLookupFailure(t *testing.T) {
	boom := errors.New("connection reset")
	topics := &stubTopics{
		byName: map[string]*repository.Topic{
			"Fractions": {ID: 7, TopicName: "Fractions"},
		},
		lookup: map[string]error{"Fractions": boom},
	}

	updated, err := applyMasteryUpdates(context.Background(), topics, 1,
		[]analysis.MasteryUpdate{{Topic: "Fractions"}})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want the lookup failure", err)
	}
	if updated != 0 {
		t.Errorf("updated = %d, want 0", updated)
	}
	if len(topics.updates) != 0 {
		t.Errorf("score writes = %v, want none", topics.updates)
	}
}

// stubBlocks serves one existing unresolved block and records writes.
type stubBlocks struct {
	existing *repository.MentalBlock
	findErr  error
	created  []*repository.MentalBlock
	recurred []int64
	severity float64
}

func (s *stubBlocks) FindUnresolvedMatching(_ context.Context, _ int64, _ string) (*repository.MentalBlock, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	if s.existing == nil {
		return nil, fmt.Errorf("table:mental_blocks: %w", pgx.ErrNoRows)
	}
	return s.existing, nil
}

func (s *stubBlocks) Create(_ context.Context, b *repository.MentalBlock) (*repository.MentalBlock, error) {
	s.created = append(s.created, b)
	return b, nil
}

func (s *stubBlocks) Recur(_ context.Context, id int64, severity float64) (*repository.MentalBlock, error) {
	s.recurred = append(s.recurred, id)
	s.severity = severity
	return &repository.MentalBlock{ID: id}, nil
}

func TestApplyBlockSignals_createsWhenNoMatch(t *testing.T) {
	blocks := &stubBlocks{}
	signals := []analysis.BlockSignal{
		{Type: analysis.SignalAvoidance, Description: "Avoidance around fractions", Severity: 3},
	}

	err := applyBlockSignals(context.Background(), blocks, 1, time.Now(), signals)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(blocks.created) != 1 {
		t.Fatalf("created = %d blocks, want 1", len(blocks.created))
	}
	if blocks.created[0].SeverityScore != 3 {
		t.Errorf("severity = %v, want 3", blocks.created[0].SeverityScore)
	}
	if len(blocks.recurred) != 0 {
		t.Errorf("recurred = %v, want none", blocks.recurred)
	}
}

func TestApplyBlockSignals_recursOnMatch(t *testing.T) {
	blocks := &stubBlocks{
		existing: &repository.MentalBlock{ID: 4, FrequencyCount: 2},
	}
	signals := []analysis.BlockSignal{
		{Type: analysis.SignalAvoidance, Description: "Avoidance around fractions", Severity: 3},
	}

	err := applyBlockSignals(context.Background(), blocks, 1, time.Now(), signals)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(blocks.created) != 0 {
		t.Errorf("created = %v, want none", blocks.created)
	}
	if len(blocks.recurred) != 1 || blocks.recurred[0] != 4 {
		t.Fatalf("recurred = %v, want [4]", blocks.recurred)
	}
	// Frequency 3 with avoidance: min(3,5) + 1.5 + 2 = 6.5.
	if blocks.severity != 6.5 {
		t.Errorf("recomputed severity = %v, want 6.5", blocks.severity)
	}
}

func TestApplyBlockSignals_propagatesLookupFailure(t *testing.T) {
	boom := errors.New("connection reset")
	blocks := &stubBlocks{findErr: boom}
	signals := []analysis.BlockSignal{
		{Type: analysis.SignalEmotional, Description: "Emotional frustration", Severity: 3.5},
	}

	err := applyBlockSignals(context.Background(), blocks, 1, time.Now(), signals)
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want the lookup failure", err)
	}
	if len(blocks.created) != 0 {
		t.Errorf("created = %v, want none on a transient failure", blocks.created)
	}
}
