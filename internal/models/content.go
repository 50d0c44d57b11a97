// Package models defines the content record types served by the
// content-service and their validation rules.
package models

import (
	"errors"
	"strings"
)

// Record is implemented by every content record type. A record that fails
// Validate is dropped from its batch; it never fails the batch as a whole.
type Record interface {
	Validate() error
}

// Topic is a single education topic (e.g. "Understanding Your Cycle").
type Topic struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Summary  string `json:"summary,omitempty"`
	Body     string `json:"body"`
	Category string `json:"category,omitempty"`
	Order    int    `json:"order,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

func (t Topic) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("topic: id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("topic: title is required")
	}
	if strings.TrimSpace(t.Body) == "" {
		return errors.New("topic: body is required")
	}
	return nil
}

// Question is a frequently-asked question with its answer.
type Question struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category,omitempty"`
	Order    int    `json:"order,omitempty"`
}

func (q Question) Validate() error {
	if strings.TrimSpace(q.ID) == "" {
		return errors.New("question: id is required")
	}
	if strings.TrimSpace(q.Question) == "" {
		return errors.New("question: question is required")
	}
	if strings.TrimSpace(q.Answer) == "" {
		return errors.New("question: answer is required")
	}
	return nil
}

// PathwayStep is one step in a care pathway (e.g. "First GP visit").
type PathwayStep struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Stage       string   `json:"stage"`
	Order       int      `json:"order,omitempty"`
	Links       []string `json:"links,omitempty"`
}

func (p PathwayStep) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pathway step: id is required")
	}
	if strings.TrimSpace(p.Title) == "" {
		return errors.New("pathway step: title is required")
	}
	if strings.TrimSpace(p.Stage) == "" {
		return errors.New("pathway step: stage is required")
	}
	return nil
}

// InfertilityInfo is an informational article about infertility causes,
// diagnosis and treatment.
type InfertilityInfo struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Body    string `json:"body"`
	Section string `json:"section,omitempty"`
	Order   int    `json:"order,omitempty"`
}

func (i InfertilityInfo) Validate() error {
	if strings.TrimSpace(i.ID) == "" {
		return errors.New("infertility info: id is required")
	}
	if strings.TrimSpace(i.Title) == "" {
		return errors.New("infertility info: title is required")
	}
	if strings.TrimSpace(i.Body) == "" {
		return errors.New("infertility info: body is required")
	}
	return nil
}

// SupportResource is an external support service (clinic, helpline, charity).
type SupportResource struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url"`
	Phone       string `json:"phone,omitempty"`
	Region      string `json:"region,omitempty"`
	Category    string `json:"category,omitempty"`
}

func (r SupportResource) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return errors.New("resource: id is required")
	}
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("resource: name is required")
	}
	if !strings.HasPrefix(r.URL, "http://") && !strings.HasPrefix(r.URL, "https://") {
		return errors.New("resource: url must start with http:// or https://")
	}
	return nil
}
