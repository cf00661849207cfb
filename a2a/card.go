package a2a

import (
	"encoding/json"
	"fmt"
	"os"
)

// AgentCard is the static discovery document describing this agent.
type AgentCard struct {
	Name               string       `json:"name"`
	Description        string       `json:"description"`
	Version            string       `json:"version"`
	URL                string       `json:"url"`
	PreferredTransport string       `json:"preferredTransport"`
	ProtocolVersion    string       `json:"protocolVersion"`
	Capabilities       Capabilities `json:"capabilities"`
	DefaultInputModes  []string     `json:"defaultInputModes"`
	DefaultOutputModes []string     `json:"defaultOutputModes"`
	Skills             []Skill      `json:"skills"`
}

// Capabilities declares optional protocol features.
type Capabilities struct {
	Streaming bool `json:"streaming"`
}

// Skill describes one capability entry in the agent card.
type Skill struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	InputModes  []string `json:"inputModes"`
	OutputModes []string `json:"outputModes"`
	Tags        []string `json:"tags"`
}

// Validate checks the card invariants: at least one skill, and every skill
// carrying a non-empty id and tags.
func (c AgentCard) Validate() error {
	if len(c.Skills) == 0 {
		return fmt.Errorf("agent card %q has no skills", c.Name)
	}
	for i, s := range c.Skills {
		if s.ID == "" {
			return fmt.Errorf("skill %d is missing an id", i)
		}
		if len(s.Tags) == 0 {
			return fmt.Errorf("skill %q is missing tags", s.ID)
		}
	}
	return nil
}

// DefaultCard returns the built-in card for the capital-city agent, with
// the deployment's public chat URL and preferred transport filled in.
func DefaultCard(url, transport string) AgentCard {
	return AgentCard{
		Name:               "Capital Agent",
		Description:        "Answers capital-city questions for any country",
		Version:            "1.0.0",
		URL:                url,
		PreferredTransport: transport,
		ProtocolVersion:    "0.3.0",
		Capabilities:       Capabilities{Streaming: true},
		DefaultInputModes:  []string{"text"},
		DefaultOutputModes: []string{"text"},
		Skills: []Skill{
			{
				ID:          "capital_query",
				Name:        "capital_query",
				Description: "Answers capital-city questions",
				InputModes:  []string{"text"},
				OutputModes: []string{"text"},
				Tags:        []string{"capital", "country"},
			},
		},
	}
}

// LoadCard reads and validates an agent card from a JSON file.
func LoadCard(path string) (AgentCard, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return AgentCard{}, fmt.Errorf("read agent card: %w", err)
	}
	var card AgentCard
	if err := json.Unmarshal(data, &card); err != nil {
		return AgentCard{}, fmt.Errorf("parse agent card: %w", err)
	}
	if err := card.Validate(); err != nil {
		return AgentCard{}, fmt.Errorf("invalid agent card: %w", err)
	}
	return card, nil
}
