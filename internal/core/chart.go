package core

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Theme is the persisted UI theme preference.
type Theme string

func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Other returns the opposite theme; used by the toggle.
func (t Theme) Other() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Chart.js-shaped configuration. The whole value is rebuilt from
// scratch on every theme or data change; nothing ever patches a nested
// field of a previously built config.
type (
	ChartConfig struct {
		Type    string       `json:"type"`
		Data    ChartData    `json:"data"`
		Options ChartOptions `json:"options"`
	}

	ChartData struct {
		Labels   []string       `json:"labels"`
		Datasets []ChartDataset `json:"datasets"`
	}

	ChartDataset struct {
		Label           string  `json:"label"`
		Data            []int64 `json:"data"`
		BackgroundColor string  `json:"backgroundColor"`
		BorderColor     string  `json:"borderColor"`
		BorderWidth     int     `json:"borderWidth"`
		BorderRadius    int     `json:"borderRadius"`
	}

	ChartOptions struct {
		Responsive bool         `json:"responsive"`
		Plugins    ChartPlugins `json:"plugins"`
		Scales     ChartScales  `json:"scales"`
	}

	ChartPlugins struct {
		Legend  ChartLegend  `json:"legend"`
		Tooltip ChartTooltip `json:"tooltip"`
	}

	ChartLegend struct {
		Position string      `json:"position"`
		Labels   ChartColors `json:"labels"`
	}

	ChartTooltip struct {
		BackgroundColor string `json:"backgroundColor"`
		TitleColor      string `json:"titleColor"`
		BodyColor       string `json:"bodyColor"`
		BorderColor     string `json:"borderColor"`
	}

	ChartScales struct {
		X ChartAxis `json:"x"`
		Y ChartAxis `json:"y"`
	}

	ChartAxis struct {
		Grid  ChartGrid   `json:"grid"`
		Ticks ChartColors `json:"ticks"`
	}

	ChartGrid struct {
		Color string `json:"color"`
	}

	ChartColors struct {
		Color string `json:"color"`
	}
)

type chartPalette struct {
	text    string
	muted   string
	grid    string
	surface string
}

var palettes = map[Theme]chartPalette{
	ThemeLight: {text: "#333333", muted: "#666666", grid: "#e0e0e0", surface: "#ffffff"},
	ThemeDark:  {text: "#ffffff", muted: "#cccccc", grid: "#404040", surface: "#2d2d2d"},
}

// BuildChartConfig maps a theme and a grouped series to a complete bar
// chart configuration. Pure: same inputs, same config.
func BuildChartConfig(theme Theme, series ChartSeries) ChartConfig {
	p, ok := palettes[theme]
	if !ok {
		p = palettes[ThemeLight]
	}

	axis := ChartAxis{
		Grid:  ChartGrid{Color: p.grid},
		Ticks: ChartColors{Color: p.muted},
	}

	return ChartConfig{
		Type: "bar",
		Data: ChartData{
			Labels: series.Labels,
			Datasets: []ChartDataset{
				{
					Label:           "Pemasukan",
					Data:            series.IncomeSeries,
					BackgroundColor: "rgba(16, 185, 129, 0.8)",
					BorderColor:     "rgba(16, 185, 129, 1)",
					BorderWidth:     2,
					BorderRadius:    4,
				},
				{
					Label:           "Pengeluaran",
					Data:            series.ExpenseSeries,
					BackgroundColor: "rgba(239, 68, 68, 0.8)",
					BorderColor:     "rgba(239, 68, 68, 1)",
					BorderWidth:     2,
					BorderRadius:    4,
				},
			},
		},
		Options: ChartOptions{
			Responsive: true,
			Plugins: ChartPlugins{
				Legend: ChartLegend{
					Position: "top",
					Labels:   ChartColors{Color: p.text},
				},
				Tooltip: ChartTooltip{
					BackgroundColor: p.surface,
					TitleColor:      p.text,
					BodyColor:       p.muted,
					BorderColor:     p.grid,
				},
			},
			Scales: ChartScales{X: axis, Y: axis},
		},
	}
}
