// Package domain models farm disease-risk assessment for livestock.
//
// # Risk Scoring
//
// Every disease in the catalog carries a [RiskProfile]: optional weather
// thresholds and seasonal flags. A farm's score for a disease starts at
// [ScoreBase] and gains a fixed increment for each profile factor whose live
// condition holds:
//
//	high temperature     TempC >= HighTemp                 +15
//	temperature range    Min <= TempC <= Max               +20
//	low temperature      TempC <= LowTemp                  +15
//	high humidity        Humidity >= HighHumidity          +15
//	high rainfall        RainfallMM >= HighRainfall        +15
//	  else low rainfall  RainfallMM <= LowRainfall         +10
//	rainy season         flag set and [IsMonsoonSeason]    +15
//	vector season        flag set and [IsVectorSeason]     +20
//
// The result is clamped to 100. No factor lowers a score, so the base is also
// the floor. Increments are policy constants, not physical ones.
//
// Risk levels:
//
//	score >= 70  high
//	score >= 40  medium
//	otherwise    low
//
// # Seasons
//
// The monsoon window is June through September everywhere, plus October
// through December inside a box covering the south-eastern coast
// (latitude 8–20, longitude 77–85). Vector season needs temperature above
// 20°C, humidity above 60% and a month between June and November.
//
// # Outbreak Proximity
//
// Distances are great-circle kilometres on a 6371 km sphere ([Haversine]).
// Outbreak records without coordinates or marked inactive never appear in
// proximity results.
package domain
