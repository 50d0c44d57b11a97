package models_test

import (
	"testing"

	"github.com/petalhealth/content-service/internal/models"
)

func TestTopic_Validate(t *testing.T) {
	tests := []struct {
		name    string
		topic   models.Topic
		wantErr bool
	}{
		{
			name:  "valid topic",
			topic: models.Topic{ID: "cycle-basics", Title: "Understanding Your Cycle", Body: "..."},
		},
		{
			name:    "missing id",
			topic:   models.Topic{Title: "Understanding Your Cycle", Body: "..."},
			wantErr: true,
		},
		{
			name:    "missing title",
			topic:   models.Topic{ID: "cycle-basics", Body: "..."},
			wantErr: true,
		},
		{
			name:    "whitespace-only body",
			topic:   models.Topic{ID: "cycle-basics", Title: "Understanding Your Cycle", Body: "   "},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.topic.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestQuestion_Validate(t *testing.T) {
	tests := []struct {
		name     string
		question models.Question
		wantErr  bool
	}{
		{
			name:     "valid question",
			question: models.Question{ID: "q1", Question: "When should I see a doctor?", Answer: "After 12 months of trying."},
		},
		{
			name:     "missing answer",
			question: models.Question{ID: "q1", Question: "When should I see a doctor?"},
			wantErr:  true,
		},
		{
			name:     "missing question text",
			question: models.Question{ID: "q1", Answer: "After 12 months of trying."},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.question.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPathwayStep_Validate(t *testing.T) {
	valid := models.PathwayStep{ID: "gp-visit", Title: "First GP visit", Stage: "referral"}
	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}

	missingStage := models.PathwayStep{ID: "gp-visit", Title: "First GP visit"}
	if err := missingStage.Validate(); err == nil {
		t.Error("Validate() = nil, want error for missing stage")
	}
}

func TestSupportResource_Validate(t *testing.T) {
	tests := []struct {
		name     string
		resource models.SupportResource
		wantErr  bool
	}{
		{
			name:     "valid resource",
			resource: models.SupportResource{ID: "r1", Name: "Fertility Network", URL: "https://example.org"},
		},
		{
			name:     "plain http allowed",
			resource: models.SupportResource{ID: "r1", Name: "Fertility Network", URL: "http://example.org"},
		},
		{
			name:     "missing url",
			resource: models.SupportResource{ID: "r1", Name: "Fertility Network"},
			wantErr:  true,
		},
		{
			name:     "non-http url",
			resource: models.SupportResource{ID: "r1", Name: "Fertility Network", URL: "ftp://example.org"},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.resource.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseResource(t *testing.T) {
	for _, res := range models.AllResources() {
		parsed, err := models.ParseResource(res.String())
		if err != nil {
			t.Errorf("ParseResource(%q) error = %v", res, err)
		}
		if parsed != res {
			t.Errorf("ParseResource(%q) = %q", res, parsed)
		}
	}

	if _, err := models.ParseResource("recipes"); err == nil {
		t.Error("ParseResource(recipes) = nil error, want error")
	}
}
