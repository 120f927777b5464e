package core

import (
	"reflect"
	"testing"
)

func TestBuildChartConfigPure(t *testing.T) {
	series := GroupByDate([]Transaction{
		tx(NewDate(2024, 3, 1), Income, 200),
		tx(NewDate(2024, 3, 2), Expense, 100),
	})

	a := BuildChartConfig(ThemeDark, series)
	b := BuildChartConfig(ThemeDark, series)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("same inputs produced different configs")
	}

	light := BuildChartConfig(ThemeLight, series)
	if light.Options.Plugins.Legend.Labels.Color == a.Options.Plugins.Legend.Labels.Color {
		t.Fatalf("themes share legend color")
	}
	if a.Type != "bar" {
		t.Fatalf("chart type = %q", a.Type)
	}
	if len(a.Data.Datasets) != 2 {
		t.Fatalf("expected income+expense datasets, got %d", len(a.Data.Datasets))
	}
	if !reflect.DeepEqual(a.Data.Labels, series.Labels) {
		t.Fatalf("labels not carried through")
	}
}

func TestBuildChartConfigUnknownThemeFallsBackToLight(t *testing.T) {
	series := ChartSeries{}
	got := BuildChartConfig(Theme("sepia"), series)
	want := BuildChartConfig(ThemeLight, series)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unknown theme should render as light")
	}
}

func TestThemeToggle(t *testing.T) {
	if ThemeLight.Other() != ThemeDark || ThemeDark.Other() != ThemeLight {
		t.Fatalf("theme toggle broken")
	}
	if Theme("sepia").Valid() {
		t.Fatalf("sepia should be invalid")
	}
}
