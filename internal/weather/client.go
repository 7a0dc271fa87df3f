// Package weather is the gateway to the OpenWeatherMap API. It curates the
// provider's current conditions and 3-hourly forecast into model.CuratedWeather.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"weather-dashboard/internal/model"
	"weather-dashboard/pkg/apierror"
)

const (
	// ForecastEntries is how many 3-hour samples the curated forecast keeps.
	ForecastEntries = 5

	breakerFailureThreshold = 5
)

var (
	errServerError      = errors.New("upstream server error")
	errUnexpectedStatus = errors.New("unexpected status code")
	errCallerGone       = errors.New("caller abandoned request")
)

// CallObserver is told the outcome of every provider call.
type CallObserver interface {
	ObserveWeatherCall(endpoint string, outcome string)
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	timeout    time.Duration
	breaker    *gobreaker.CircuitBreaker
	observer   CallObserver
}

func NewClient(httpClient *http.Client, baseURL string, apiKey string, timeout time.Duration) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweathermap",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailureThreshold
		},
		// A caller that cancels or runs out of its own deadline says nothing
		// about the provider's health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, errCallerGone)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			slog.Warn("weather provider circuit changed state", "breaker", name, "from", from.String(), "to", to.String())
		},
	})

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		timeout:    timeout,
		breaker:    cb,
	}
}

// SetObserver attaches o to the client. It is not safe to call once the
// client is serving requests.
func (c *Client) SetObserver(o CallObserver) {
	c.observer = o
}

type currentPayload struct {
	Name string `json:"name"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
}

type forecastPayload struct {
	List []struct {
		DtTxt string `json:"dt_txt"`
		Main  struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
	} `json:"list"`
}

// Fetch returns current conditions plus a short forecast for city. Any failure
// of the current-conditions call is reported as ErrCityNotFound; a failed
// forecast call only empties the forecast.
func (c *Client) Fetch(ctx context.Context, city string, country string) (model.CuratedWeather, error) {
	city = strings.TrimSpace(city)
	country = strings.TrimSpace(country)
	if city == "" {
		return model.CuratedWeather{}, apierror.Validation(model.ErrInvalidInput, "city is required")
	}
	if country == "" {
		country = model.DefaultCountry
	}

	var current currentPayload
	if err := c.get(ctx, "weather", city, country, &current); err != nil {
		slog.Info("current weather lookup failed", "city", city, "country", country, "error", err.Error())
		return model.CuratedWeather{}, apierror.NotFound(model.ErrCityNotFound, "City not found", city)
	}

	curated := model.CuratedWeather{
		City:            current.Name,
		Temperature:     current.Main.Temp,
		Humidity:        current.Main.Humidity,
		ForecastSummary: []model.ForecastEntry{},
	}
	if len(current.Weather) > 0 {
		curated.Description = current.Weather[0].Description
	}

	var forecast forecastPayload
	if err := c.get(ctx, "forecast", city, country, &forecast); err != nil {
		slog.Warn("forecast lookup failed; returning current conditions only", "city", city, "country", country, "error", err.Error())
		return curated, nil
	}

	for i, item := range forecast.List {
		if i == ForecastEntries {
			break
		}
		curated.ForecastSummary = append(curated.ForecastSummary, model.ForecastEntry{
			Date:        item.DtTxt,
			Temperature: item.Main.Temp,
		})
	}

	return curated, nil
}

// get performs one bounded GET against the provider and decodes a 200 body
// into out. Transport errors, per-call timeouts and 5xx responses count
// against the breaker; other non-200 answers (unknown city, bad key) and
// calls abandoned by the caller do not.
func (c *Client) get(ctx context.Context, endpoint string, city string, country string, out any) error {
	outcome, err := c.fetch(ctx, endpoint, city, country, out)
	if c.observer != nil {
		c.observer.ObserveWeatherCall(endpoint, outcome)
	}
	return err
}

func (c *Client) fetch(parent context.Context, endpoint string, city string, country string, out any) (string, error) {
	if err := parent.Err(); err != nil {
		return "canceled", fmt.Errorf("%w: %w", errCallerGone, err)
	}

	ctx, cancel := context.WithTimeout(parent, c.timeout)
	defer cancel()

	values := url.Values{}
	values.Set("q", city+","+country)
	values.Set("appid", c.apiKey)
	values.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+endpoint+"?"+values.Encode(), nil)
	if err != nil {
		return "transport_error", err
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		resp, doErr := c.httpClient.Do(req)
		if doErr != nil {
			if parent.Err() != nil {
				return nil, fmt.Errorf("%w: %w", errCallerGone, doErr)
			}
			return nil, doErr
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			resp.Body.Close()
			return nil, fmt.Errorf("%w: %d", errServerError, resp.StatusCode)
		}
		return resp, nil
	})
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return "breaker_open", err
	case errors.Is(err, errCallerGone):
		return "canceled", err
	case errors.Is(err, errServerError):
		return "server_error", err
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout", err
	case err != nil:
		return "transport_error", err
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return "transport_error", fmt.Errorf("unexpected result type from circuit breaker")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "client_error", fmt.Errorf("%w: %d", errUnexpectedStatus, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if parent.Err() != nil {
			return "canceled", fmt.Errorf("%w: %w", errCallerGone, err)
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return "timeout", err
		}
		return "decode_error", fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return "ok", nil
}
