package config

// StationConfig names the boarding station and the destination groups shown
// on the board, one display row per destination group.
type StationConfig struct {
	From string   `yaml:"from" validate:"required"`
	To   []string `yaml:"to" validate:"required,min=1,dive,required"`
}

// PathsConfig locates the JSON documents exchanged between the fetch daemon
// and the display engine.
type PathsConfig struct {
	Dir       string `yaml:"dir"`
	Departure string `yaml:"departure"`
	Operation string `yaml:"operation"`
	Weather   string `yaml:"weather"`
	FirstLast string `yaml:"firstLast"`
}

// DisplayConfig contains panel geometry and display loop cadences.
type DisplayConfig struct {
	Width  int `yaml:"width" validate:"gt=0"`
	Height int `yaml:"height" validate:"gt=0"`

	DataRefreshMS  int `yaml:"dataRefreshMS" validate:"gte=0"`
	LayoutToggleMS int `yaml:"layoutToggleMS" validate:"gte=0"`
	FrameMS        int `yaml:"frameMS" validate:"gte=0"`
}

// ColorRuleConfig is one keyword -> color entry of the train-type color
// table. Rules are evaluated in document order; first substring match wins.
type ColorRuleConfig struct {
	Keyword string `yaml:"keyword" validate:"required"`
	Color   string `yaml:"color" validate:"required"`
}

// WeatherConfig contains JMA forecast fetch configuration.
type WeatherConfig struct {
	AreaCode       string `yaml:"areaCode"`
	CacheTTLMinute int    `yaml:"cacheTTLMinute" validate:"gte=0"`
}

// FetchConfig contains fetch daemon configuration.
type FetchConfig struct {
	PollIntervalMS   int    `yaml:"pollIntervalMS" validate:"gte=0"`
	SearchCooldownMS int    `yaml:"searchCooldownMS" validate:"gte=0"`
	TransitBaseURL   string `yaml:"transitBaseURL" validate:"omitempty,url"`
	StatusAreaURL    string `yaml:"statusAreaURL" validate:"omitempty,url"`
	UserAgent        string `yaml:"userAgent"`
	TimeoutMS        int    `yaml:"timeoutMS" validate:"gte=0"`

	Weather WeatherConfig `yaml:"weather"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Station    StationConfig     `yaml:"station" validate:"required"`
	Paths      PathsConfig       `yaml:"paths"`
	Display    DisplayConfig     `yaml:"display"`
	TypeColors []ColorRuleConfig `yaml:"typeColors" validate:"omitempty,dive"`
	Fetch      FetchConfig       `yaml:"fetch"`
}
