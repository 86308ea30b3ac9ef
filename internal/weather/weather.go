// Package weather fetches current conditions from the OpenWeatherMap API
// through the raw HTTP client and reduces them to the handful of fields
// the widget renders: a description, a temperature and an icon.
package weather

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"unicode"

	"github.com/wxterm/wxterm/internal/rawhttp"
)

const (
	defaultBaseURL   = "https://api.openweathermap.org"
	defaultUserAgent = "wxterm"

	// failedParse is rendered when the API response couldn't be walked.
	failedParse = "(failed to parse API response)"
)

// Icon is one of the five condition icons the widget knows.
type Icon int

const (
	IconSun Icon = iota
	IconClouds
	IconMoon
	IconRain
	IconSnow
)

// Conditions is the current weather reduced to what the widget shows.
type Conditions struct {
	Description string
	Temp        float64
	ID          int // openweathermap.org/weather-conditions code
	Night       bool
	Units       string // "imperial" or "metric"
}

// Icon maps the condition code ranges to an icon, falling back to sun or
// moon by the day/night flag.
func (c *Conditions) Icon() Icon {
	switch {
	case c.ID >= 200 && c.ID <= 399:
		return IconRain
	case c.ID >= 500 && c.ID <= 599:
		return IconRain
	case c.ID >= 600 && c.ID <= 699:
		return IconSnow
	case c.ID >= 801 && c.ID <= 804:
		return IconClouds
	case c.Night:
		return IconMoon
	default:
		return IconSun
	}
}

// Title renders the window-title form: "Clear sky, 72°F".
func (c *Conditions) Title() string {
	unit := "F"
	if c.Units == "metric" {
		unit = "C"
	}
	return fmt.Sprintf("%s, %d°%s", c.Description, int(c.Temp), unit)
}

// Client queries the current-conditions endpoint for one location.
type Client struct {
	APIKey string
	Zip    string
	Units  string // "imperial" (default) or "metric"

	// BaseURL overrides the API host, mainly for tests.
	BaseURL   string
	UserAgent string
	TLSConfig *tls.Config
}

func (c *Client) units() string {
	if c.Units == "metric" {
		return "metric"
	}
	return "imperial"
}

func (c *Client) requestURL() string {
	base := c.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	return fmt.Sprintf("%s/data/2.5/weather?zip=%s&appid=%s&units=%s&mode=json",
		base, rawhttp.EncodeString(c.Zip), rawhttp.EncodeString(c.APIKey), c.units())
}

// Current performs one fetch. Connection-level failures return an error;
// an unparseable body still returns Conditions carrying the placeholder
// description, matching how the widget degrades.
func (c *Client) Current() (*Conditions, error) {
	opts := []rawhttp.Option{}
	ua := c.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	opts = append(opts, rawhttp.WithUserAgent(ua))
	if c.TLSConfig != nil {
		opts = append(opts, rawhttp.WithTLSConfig(c.TLSConfig))
	}

	req, err := rawhttp.Get(c.requestURL(), opts...)
	if err != nil {
		return nil, err
	}
	defer req.Close()

	if err := req.SkipHeader(); err != nil {
		return nil, fmt.Errorf("failed reading HTTP body: %w", err)
	}

	cond := parseConditions(rawhttp.NewBodyReader(req))
	cond.Units = c.units()
	return cond, nil
}

// walkState tracks where the token walk is inside the response document.
type walkState int

const (
	stateBegin walkState = iota
	stateInWeather
	stateInWeatherID
	stateInWeatherDesc
	stateInWeatherIcon
	stateInMain
	stateInMainTemp
)

// parseConditions walks the response tokens without materializing the
// document, picking out weather.id, weather.description, weather.icon and
// main.temp. Anything unexpected, truncation included, just ends the walk
// with whatever was gathered so far.
func parseConditions(r io.Reader) *Conditions {
	cond := &Conditions{Description: failedParse}
	dec := json.NewDecoder(r)
	dec.UseNumber()

	state := stateBegin
	for {
		tok, err := dec.Token()
		if err != nil {
			return cond
		}

		switch state {
		case stateBegin:
			if s, ok := tok.(string); ok {
				switch s {
				case "weather":
					state = stateInWeather
				case "main":
					state = stateInMain
				}
			}
		case stateInWeather:
			if s, ok := tok.(string); ok {
				switch s {
				case "description":
					state = stateInWeatherDesc
				case "id":
					state = stateInWeatherID
				case "icon":
					state = stateInWeatherIcon
				}
			} else if d, ok := tok.(json.Delim); ok && d == '}' {
				state = stateBegin
			}
		case stateInWeatherID:
			if n, ok := tok.(json.Number); ok {
				if id, err := n.Int64(); err == nil {
					cond.ID = int(id)
				}
			}
			state = stateInWeather
		case stateInWeatherIcon:
			// Codes look like "13d" or "04n".
			if s, ok := tok.(string); ok && len(s) >= 3 {
				cond.Night = s[2] == 'n'
			}
			state = stateInWeather
		case stateInWeatherDesc:
			if s, ok := tok.(string); ok {
				cond.Description = upperFirst(s)
			}
			state = stateInWeather
		case stateInMain:
			if s, ok := tok.(string); ok && s == "temp" {
				state = stateInMainTemp
			}
		case stateInMainTemp:
			if n, ok := tok.(json.Number); ok {
				if temp, err := n.Float64(); err == nil {
					cond.Temp = temp
				}
			}
			state = stateInMain
		}
	}
}

func upperFirst(s string) string {
	for _, r := range s {
		return string(unicode.ToUpper(r)) + s[len(string(r)):]
	}
	return s
}
