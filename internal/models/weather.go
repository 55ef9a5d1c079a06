package models

import "fmt"

// WeatherType is the mood metaphor picked for a day
type WeatherType string

const (
	WeatherBasic     WeatherType = "basic"
	WeatherSunny     WeatherType = "sunny"
	WeatherCloudy    WeatherType = "cloudy"
	WeatherRainy     WeatherType = "rainy"
	WeatherStorm     WeatherType = "storm"
	WeatherSunshower WeatherType = "sunshower"
	WeatherFoggy     WeatherType = "foggy"
	WeatherSnowy     WeatherType = "snowy"
	WeatherFire      WeatherType = "fire"
	WeatherSunset    WeatherType = "sunset"
	WeatherNight     WeatherType = "night"
	WeatherSunrise   WeatherType = "sunrise"
)

const (
	// DefaultDisplayWeather is shown on the main screen before anything is picked
	DefaultDisplayWeather = WeatherBasic
	// DefaultRecordWeather is stamped on a record saved without a selected weather
	DefaultRecordWeather = WeatherSunny
)

// WeatherInfo describes a weather type for display
type WeatherInfo struct {
	ID      WeatherType
	Korean  string
	Emotion string
	Emoji   string
}

// Weathers is the catalog in display order
var Weathers = []WeatherInfo{
	{ID: WeatherBasic, Korean: "잔잔", Emotion: "평온한, 일상적인", Emoji: "🌊"},
	{ID: WeatherSunny, Korean: "맑음", Emotion: "평화로운, 따뜻한", Emoji: "☀️"},
	{ID: WeatherCloudy, Korean: "흐림", Emotion: "우울한, 무거운", Emoji: "☁️"},
	{ID: WeatherRainy, Korean: "비", Emotion: "슬픈, 지친", Emoji: "🌧️"},
	{ID: WeatherStorm, Korean: "폭풍", Emotion: "화난, 격한", Emoji: "⛈️"},
	{ID: WeatherSunshower, Korean: "여우비", Emotion: "복잡한, 묘한", Emoji: "🌦️"},
	{ID: WeatherFoggy, Korean: "안개", Emotion: "혼란스러운, 불안한", Emoji: "🌫️"},
	{ID: WeatherSnowy, Korean: "눈", Emotion: "차가운, 공허한", Emoji: "❄️"},
	{ID: WeatherFire, Korean: "불꽃", Emotion: "열정적인, 뜨거운", Emoji: "🔥"},
	{ID: WeatherSunset, Korean: "노을", Emotion: "아쉬운, 감성적인", Emoji: "🌅"},
	{ID: WeatherNight, Korean: "밤", Emotion: "고요한, 잔잔한", Emoji: "🌙"},
	{ID: WeatherSunrise, Korean: "새벽", Emotion: "희망찬, 새로운", Emoji: "🌄"},
}

// Valid reports whether w is part of the catalog
func (w WeatherType) Valid() bool {
	_, ok := LookupWeather(w)
	return ok
}

// Info returns the catalog entry for w, or an entry with only the ID set for unknown types
func (w WeatherType) Info() WeatherInfo {
	if info, ok := LookupWeather(w); ok {
		return info
	}
	return WeatherInfo{ID: w, Korean: string(w)}
}

// LookupWeather finds the catalog entry for w
func LookupWeather(w WeatherType) (WeatherInfo, bool) {
	for _, info := range Weathers {
		if info.ID == w {
			return info, true
		}
	}
	return WeatherInfo{}, false
}

// ParseWeather validates a user-supplied weather name
func ParseWeather(s string) (WeatherType, error) {
	w := WeatherType(s)
	if !w.Valid() {
		return "", fmt.Errorf("unknown weather type: %q", s)
	}
	return w, nil
}
