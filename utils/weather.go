package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"net/url"
	"time"
	"unicode"
	"unicode/utf8"

	"venue_manager/config"

	"github.com/redis/go-redis/v9"
)

const defaultWeatherURL = "https://api.openweathermap.org/data/2.5/weather"

var weatherClient = &http.Client{Timeout: 5 * time.Second}

var weatherCache *redis.Client

// InitWeatherCache wires the optional Redis cache. Without REDIS_ADDR
// every lookup goes straight to the provider.
func InitWeatherCache() {
	addr := config.Config("REDIS_ADDR")
	if addr == "" {
		return
	}
	weatherCache = redis.NewClient(&redis.Options{Addr: addr})
}

type WeatherSummary struct {
	Temp        int     `json:"temp"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Humidity    int     `json:"humidity"`
	Wind        float64 `json:"wind"`
}

type weatherPayload struct {
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

// FetchWeather returns the current conditions at the given coordinates, or
// nil when the provider is unreachable, slow or answers anything but 200.
// Failures are logged and never propagate to the caller.
func FetchWeather(lat, lon float64) *WeatherSummary {
	cacheKey := fmt.Sprintf("weather:%.4f:%.4f", lat, lon)
	if cached := cacheGet(cacheKey); cached != nil {
		return cached
	}

	base := config.Config("WEATHER_API_URL")
	if base == "" {
		base = defaultWeatherURL
	}
	params := url.Values{}
	params.Set("lat", fmt.Sprintf("%f", lat))
	params.Set("lon", fmt.Sprintf("%f", lon))
	params.Set("appid", config.Config("WEATHER_API_KEY"))
	params.Set("units", "metric")
	params.Set("lang", "es")

	resp, err := weatherClient.Get(base + "?" + params.Encode())
	if err != nil {
		log.Printf("weather: request failed: %v", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("weather: provider answered %d", resp.StatusCode)
		return nil
	}

	var payload weatherPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Printf("weather: malformed payload: %v", err)
		return nil
	}
	if len(payload.Weather) == 0 {
		log.Printf("weather: payload without conditions")
		return nil
	}

	summary := &WeatherSummary{
		Temp:        int(math.Round(payload.Main.Temp)),
		Description: capitalize(payload.Weather[0].Description),
		Icon:        payload.Weather[0].Icon,
		Humidity:    payload.Main.Humidity,
		Wind:        payload.Wind.Speed,
	}

	cacheSet(cacheKey, summary)
	return summary
}

func cacheGet(key string) *WeatherSummary {
	if weatherCache == nil {
		return nil
	}
	raw, err := weatherCache.Get(context.Background(), key).Result()
	if err != nil {
		return nil
	}
	var summary WeatherSummary
	if err := json.Unmarshal([]byte(raw), &summary); err != nil {
		return nil
	}
	return &summary
}

func cacheSet(key string, summary *WeatherSummary) {
	if weatherCache == nil {
		return
	}
	raw, err := json.Marshal(summary)
	if err != nil {
		return
	}
	if err := weatherCache.Set(context.Background(), key, raw, 10*time.Minute).Err(); err != nil {
		log.Printf("weather: cache write failed: %v", err)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
