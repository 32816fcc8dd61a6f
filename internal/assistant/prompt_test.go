package assistant_test

import (
	"strings"
	"testing"

	"study-dashboard/internal/assistant"
	"study-dashboard/internal/model"
	"study-dashboard/internal/schedule"
)

func TestBuildSystemPrompt(t *testing.T) {
	p := schedule.Profile{Name: "Camilo", Age: 19, University: "Javeriana", Program: "Industrial", Role: "Monitor"}
	got := assistant.BuildSystemPrompt(p, []string{"Simulación", "Calidad"})
	for _, want := range []string{"Camilo", "19 años", "Simulación, Calidad", "Monitor"} {
		if !strings.Contains(got, want) {
			t.Errorf("system prompt missing %q", want)
		}
	}
}

func TestBuildSuggestionPrompt(t *testing.T) {
	snap := assistant.Snapshot{
		Now:     now,
		Pending: []model.Task{{Title: "Informe", Priority: model.PriorityHigh}},
	}
	got := assistant.BuildSuggestionPrompt(schedule.Profile{Name: "Camilo"}, snap)
	if !strings.Contains(got, "Jueves") {
		t.Errorf("expected day name in prompt: %s", got)
	}
	if !strings.Contains(got, "Informe (HIGH)") {
		t.Errorf("expected pending task in prompt: %s", got)
	}
	if !strings.Contains(got, "Clases de hoy: Ninguna") {
		t.Errorf("expected empty classes marker: %s", got)
	}
}

func TestBuildParsePrompt(t *testing.T) {
	got := assistant.BuildParsePrompt("entregar informe mañana", now, []string{"Simulación"})
	if !strings.Contains(got, "2025-11-20") || !strings.Contains(got, `"entregar informe mañana"`) {
		t.Errorf("unexpected prompt: %s", got)
	}
}
