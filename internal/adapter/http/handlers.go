package http

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/couchcryptid/livestock-risk-service/internal/adapter/translate"
	"github.com/couchcryptid/livestock-risk-service/internal/domain"
)

// userFarm loads the caller's farm. With needLocation the farm must also
// have coordinates. It writes the error response itself and reports whether
// the handler may continue.
func (a *api) userFarm(w http.ResponseWriter, r *http.Request, needLocation bool) (domain.Farm, bool) {
	farm, err := a.risks.Farm(r.Context(), userIDFrom(r.Context()))
	switch {
	case errors.Is(err, domain.ErrNotFound):
		if needLocation {
			writeError(w, http.StatusBadRequest, msgNoFarmLocation)
		} else {
			writeError(w, http.StatusBadRequest, msgNoFarm)
		}
		return domain.Farm{}, false
	case err != nil:
		a.serverError(w, r, err)
		return domain.Farm{}, false
	}

	if needLocation {
		if _, ok := farm.Location(); !ok {
			writeError(w, http.StatusBadRequest, msgNoFarmLocation)
			return domain.Farm{}, false
		}
	}
	return farm, true
}

func parseRadius(r *http.Request, def float64) (float64, bool) {
	raw := r.URL.Query().Get("radius")
	if raw == "" {
		return def, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

func parseCoord(raw string, limit float64) (float64, bool) {
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.Abs(v) > limit {
		return 0, false
	}
	return v, true
}

func (a *api) nearbyOutbreaks(w http.ResponseWriter, r *http.Request) {
	radius, ok := parseRadius(r, domain.DefaultOutbreakRadiusKM)
	if !ok {
		writeError(w, http.StatusBadRequest, "radius must be a positive number")
		return
	}
	farm, ok := a.userFarm(w, r, true)
	if !ok {
		return
	}

	nearby, err := a.risks.NearbyOutbreaks(r.Context(), farm, radius)
	if err != nil {
		a.serverError(w, r, err)
		return
	}

	out := make([]outbreakSummary, len(nearby))
	for i, n := range nearby {
		out[i] = summaryOf(n)
	}
	writeJSON(w, http.StatusOK, map[string]any{"outbreaks": out})
}

func (a *api) farmRisks(w http.ResponseWriter, r *http.Request) {
	farm, ok := a.userFarm(w, r, true)
	if !ok {
		return
	}

	risks, err := a.risks.FarmRisks(r.Context(), farm)
	if err != nil {
		a.serverError(w, r, err)
		return
	}

	lang := requestLanguage(r)
	out := make([]riskView, len(risks))
	for i, ra := range risks {
		out[i] = riskView{RiskAssessment: ra}
		if lang != "" {
			out[i].Label = a.translator.Translate(r.Context(), ra.Disease, lang, defaultSourceLanguage)
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"risks": out})
}

func (a *api) diseaseInfo(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("disease"))
	if name == "" {
		writeError(w, http.StatusBadRequest, "Disease name is required")
		return
	}

	info := a.library.Info(name)
	if lang := requestLanguage(r); lang != "" {
		tr := func(s string) string {
			return a.translator.Translate(r.Context(), s, lang, defaultSourceLanguage)
		}
		info.Description = tr(info.Description)
		info.Treatment = tr(info.Treatment)
		info.Symptoms = translateAll(info.Symptoms, tr)
		info.Prevention = translateAll(info.Prevention, tr)
	}
	writeJSON(w, http.StatusOK, info)
}

func translateAll(in []string, tr func(string) string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = tr(s)
	}
	return out
}

// requestLanguage returns the ?lang target, or "" when no translation is
// wanted.
func requestLanguage(r *http.Request) string {
	lang := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("lang")))
	if lang == defaultSourceLanguage {
		return ""
	}
	return lang
}

func (a *api) outbreak(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid outbreak id")
		return
	}

	var farm *domain.Farm
	f, err := a.risks.Farm(r.Context(), userIDFrom(r.Context()))
	switch {
	case err == nil:
		farm = &f
	case !errors.Is(err, domain.ErrNotFound):
		a.serverError(w, r, err)
		return
	}

	detail, err := a.risks.Outbreak(r.Context(), id, farm)
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Outbreak not found")
		return
	}
	if err != nil {
		a.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, detailOf(detail))
}

func (a *api) weather(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lat, okLat := parseCoord(q.Get("lat"), 90)
	lon, okLon := parseCoord(q.Get("lon"), 180)
	if !okLat || !okLon {
		writeError(w, http.StatusBadRequest, "Latitude and longitude are required")
		return
	}

	snap := a.risks.Weather(r.Context(), domain.GeoPoint{Lat: lat, Lon: lon})
	writeJSON(w, http.StatusOK, weatherView{
		WeatherSnapshot: snap,
		RiskMessage:     domain.WeatherRiskMessage(snap),
	})
}

func (a *api) history(w http.ResponseWriter, r *http.Request) {
	farm, ok := a.userFarm(w, r, false)
	if !ok {
		return
	}

	h, err := a.risks.History(r.Context(), farm, strings.TrimSpace(r.URL.Query().Get("disease")))
	if err != nil {
		a.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h)
}

func (a *api) nearbyVets(w http.ResponseWriter, r *http.Request) {
	radius, ok := parseRadius(r, domain.DefaultVetRadiusKM)
	if !ok {
		writeError(w, http.StatusBadRequest, "radius must be a positive number")
		return
	}
	farm, ok := a.userFarm(w, r, true)
	if !ok {
		return
	}

	vets, err := a.risks.NearbyVets(r.Context(), farm, radius)
	if err != nil {
		a.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"vets": vets})
}

func (a *api) vaccineInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.library.Vaccine(chi.URLParam(r, "disease")))
}

func (a *api) vaccinesForAnimal(w http.ResponseWriter, r *http.Request) {
	animal := strings.TrimSpace(r.URL.Query().Get("animal"))
	if animal == "" {
		writeError(w, http.StatusBadRequest, "Animal type is required")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"vaccines": a.library.VaccinesForAnimal(animal)})
}

func (a *api) listNotifications(w http.ResponseWriter, r *http.Request) {
	ns, err := a.notifications.Notifications(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		a.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"notifications": ns})
}

func (a *api) unreadCount(w http.ResponseWriter, r *http.Request) {
	n, err := a.notifications.UnreadNotificationCount(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		a.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"unread_count": n})
}

func (a *api) markAllRead(w http.ResponseWriter, r *http.Request) {
	n, err := a.notifications.MarkNotificationsRead(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		a.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"updated": n})
}

func (a *api) translate(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "Missing text parameter")
		return
	}
	if req.SourceLanguage == "" {
		req.SourceLanguage = defaultSourceLanguage
	}
	if !translate.Supported(req.TargetLanguage) {
		writeError(w, http.StatusBadRequest, "Unsupported target language: "+req.TargetLanguage)
		return
	}

	writeJSON(w, http.StatusOK, translateResponse{
		Original:       req.Text,
		Translated:     a.translator.Translate(r.Context(), req.Text, req.TargetLanguage, req.SourceLanguage),
		SourceLanguage: req.SourceLanguage,
		TargetLanguage: req.TargetLanguage,
	})
}
