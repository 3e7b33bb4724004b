package puppies

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"litter-milestones/internal/domain/age"
	"litter-milestones/internal/domain/growth"
	"litter-milestones/internal/domain/protocols"
	"litter-milestones/internal/middleware"
	"litter-milestones/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, gw *Gateway) {
	r.Post("/litters", createLitterHandler(svc))
	r.Route("/litters/{litterID}", func(lr chi.Router) {
		lr.Get("/", getLitterHandler(svc))
		lr.Get("/puppies", listPuppiesHandler(svc))
		lr.Post("/puppies", createPuppyHandler(svc))
		lr.Get("/development", litterDevelopmentHandler(gw))
	})

	r.Route("/puppies/{puppyID}", func(pr chi.Router) {
		pr.Get("/", getPuppyHandler(svc))
		pr.Get("/development", puppyDevelopmentHandler(gw))

		// Un evento por request; la respuesta es el estado derivado ya recalculado.
		pr.Post("/protocols/{protocol}/events", protocolEventHandler(gw))
		pr.Post("/weights", addWeightHandler(gw))
	})
}

// createLitterRequest es el cuerpo para registrar una camada.
type createLitterRequest struct {
	Name      string `json:"name"`
	DamName   string `json:"dam_name"`
	SireName  string `json:"sire_name"`
	BirthDate string `json:"birth_date"` // YYYY-MM-DD o RFC3339, opcional
}

type litterResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	DamName   string     `json:"dam_name"`
	SireName  string     `json:"sire_name"`
	BirthDate *time.Time `json:"birth_date"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type createPuppyRequest struct {
	Name        string   `json:"name"`
	Sex         Sex      `json:"sex" enums:"male,female,unknown"`
	Color       string   `json:"color"`
	BirthWeight *float64 `json:"birth_weight"` // gramos
}

type puppyResponse struct {
	ID          string    `json:"id"`
	LitterID    string    `json:"litter_id"`
	Name        string    `json:"name"`
	Sex         Sex       `json:"sex"`
	Color       string    `json:"color"`
	BirthWeight *float64  `json:"birth_weight"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// protocolEventRequest es un único evento sobre el log de un protocolo.
// type decide qué campos se leen.
type protocolEventRequest struct {
	Type       string `json:"type" enums:"toggle_exercise,set_scent,toggle_item"`
	Day        int    `json:"day"`
	ExerciseID string `json:"exercise_id"`
	Scent      string `json:"scent"`
	ItemID     string `json:"item_id"`
}

type addWeightRequest struct {
	Weight float64 `json:"weight"` // gramos
	Date   string  `json:"date"`   // YYYY-MM-DD o RFC3339
}

// developmentResponse es el estado derivado de un cachorro.
type developmentResponse struct {
	PuppyID   string             `json:"puppy_id"`
	LitterID  string             `json:"litter_id"`
	AsOf      time.Time          `json:"as_of"`
	Available bool               `json:"available"`
	Protocols []protocols.Result `json:"protocols"`
	Summary   protocols.Summary  `json:"summary"`
	Growth    growth.Report      `json:"growth"`
}

type litterDevelopmentResponse struct {
	Litter  litterResponse        `json:"litter"`
	Puppies []developmentResponse `json:"puppies"`
}

// createLitterHandler godoc
// @Summary Crear camada
// @Description Registra una camada. Sin birth_date los protocolos quedan como no disponibles. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags litters
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body createLitterRequest true "Datos de la camada"
// @Success 201 {object} litterResponse
// @Failure 400 {string} string "invalid json / birth_date inválido"
// @Failure 401 {string} string "unauthorized"
// @Router /litters [post]
func createLitterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireClaims(w, r); !ok {
			return
		}

		var req createLitterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var bd *time.Time
		if strings.TrimSpace(req.BirthDate) != "" {
			t, err := age.ParseDate(req.BirthDate)
			if err != nil {
				http.Error(w, "birth_date must be YYYY-MM-DD or RFC3339", http.StatusBadRequest)
				return
			}
			bd = &t
		}

		l, err := svc.CreateLitter(r.Context(), CreateLitterInput{
			Name:      req.Name,
			DamName:   req.DamName,
			SireName:  req.SireName,
			BirthDate: bd,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toLitterResponse(l))
	}
}

// getLitterHandler godoc
// @Summary Obtener camada
// @Tags litters
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param litterID path string true "ID de la camada"
// @Success 200 {object} litterResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "not found"
// @Router /litters/{litterID} [get]
func getLitterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireClaims(w, r); !ok {
			return
		}

		l, err := svc.GetLitter(r.Context(), chi.URLParam(r, "litterID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toLitterResponse(l))
	}
}

// listPuppiesHandler godoc
// @Summary Listar cachorros de la camada
// @Tags puppies
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param litterID path string true "ID de la camada"
// @Success 200 {array} puppyResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "not found"
// @Router /litters/{litterID}/puppies [get]
func listPuppiesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireClaims(w, r); !ok {
			return
		}

		items, err := svc.ListPuppies(r.Context(), chi.URLParam(r, "litterID"))
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]puppyResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPuppyResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// createPuppyHandler godoc
// @Summary Registrar cachorro
// @Description Agrega un cachorro a la camada. birth_weight (gramos) es opcional; 0 se toma como ausente.
// @Tags puppies
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param litterID path string true "ID de la camada"
// @Param payload body createPuppyRequest true "Datos del cachorro"
// @Success 201 {object} puppyResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "litter not found"
// @Router /litters/{litterID}/puppies [post]
func createPuppyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireClaims(w, r); !ok {
			return
		}

		var req createPuppyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.CreatePuppy(r.Context(), chi.URLParam(r, "litterID"), CreatePuppyInput{
			Name:        req.Name,
			Sex:         string(req.Sex),
			Color:       req.Color,
			BirthWeight: req.BirthWeight,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toPuppyResponse(p))
	}
}

// getPuppyHandler godoc
// @Summary Obtener cachorro
// @Tags puppies
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param puppyID path string true "ID del cachorro"
// @Success 200 {object} puppyResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "not found"
// @Router /puppies/{puppyID} [get]
func getPuppyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireClaims(w, r); !ok {
			return
		}

		p, err := svc.GetPuppy(r.Context(), chi.URLParam(r, "puppyID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPuppyResponse(p))
	}
}

// puppyDevelopmentHandler godoc
// @Summary Estado de desarrollo del cachorro
// @Description Devuelve los cuatro protocolos, el resumen y la curva de peso derivados a la fecha actual.
// @Tags development
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param puppyID path string true "ID del cachorro"
// @Param order query string false "desc = pesadas más recientes primero"
// @Success 200 {object} developmentResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "not found"
// @Router /puppies/{puppyID}/development [get]
func puppyDevelopmentHandler(gw *Gateway) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireClaims(w, r); !ok {
			return
		}

		st, err := gw.Derive(r.Context(), chi.URLParam(r, "puppyID"))
		if err != nil {
			writeError(w, err)
			return
		}
		if strings.EqualFold(r.URL.Query().Get("order"), "desc") {
			st.Growth.Points = growth.MostRecentFirst(st.Growth.Points)
		}
		writeJSON(w, http.StatusOK, toDevelopmentResponse(st))
	}
}

// litterDevelopmentHandler godoc
// @Summary Estado de desarrollo de la camada
// @Tags development
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param litterID path string true "ID de la camada"
// @Success 200 {object} litterDevelopmentResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "not found"
// @Router /litters/{litterID}/development [get]
func litterDevelopmentHandler(gw *Gateway) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireClaims(w, r); !ok {
			return
		}

		l, states, err := gw.DeriveLitter(r.Context(), chi.URLParam(r, "litterID"))
		if err != nil {
			writeError(w, err)
			return
		}

		out := litterDevelopmentResponse{
			Litter:  toLitterResponse(l),
			Puppies: make([]developmentResponse, 0, len(states)),
		}
		for _, st := range states {
			out.Puppies = append(out.Puppies, toDevelopmentResponse(st))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// protocolEventHandler godoc
// @Summary Registrar evento de protocolo
// @Description Aplica un evento (toggle_exercise, set_scent o toggle_item) al log del protocolo. El executor sale del token. Con ENFORCE_PROTOCOL_WINDOWS=true se rechazan protocolos bloqueados, días fuera de ventana y días futuros.
// @Tags development
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param X-Debug-User-Name header string false "Solo en modo dev, nombre del executor"
// @Param Authorization header string false "Bearer token en producción"
// @Param puppyID path string true "ID del cachorro"
// @Param protocol path string true "neurological, olfactory, auditory o sensory"
// @Param payload body protocolEventRequest true "Evento"
// @Success 200 {object} developmentResponse
// @Failure 400 {string} string "invalid json / evento inválido"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "not found"
// @Failure 409 {string} string "fuera de ventana / protocolo bloqueado / sin fecha de nacimiento"
// @Failure 503 {string} string "persistence failure (cambio revertido)"
// @Router /puppies/{puppyID}/protocols/{protocol}/events [post]
func protocolEventHandler(gw *Gateway) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		t, err := protocols.ParseType(chi.URLParam(r, "protocol"))
		if err != nil {
			writeError(w, err)
			return
		}

		var req protocolEventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var ev protocols.Event
		switch strings.TrimSpace(req.Type) {
		case "toggle_exercise":
			ev = protocols.ToggleExercise{Day: req.Day, ExerciseID: req.ExerciseID}
		case "set_scent":
			ev = protocols.SetScent{Day: req.Day, Scent: req.Scent, Executor: claims.Executor()}
		case "toggle_item":
			ev = protocols.ToggleItem{ItemID: req.ItemID, Executor: claims.Executor()}
		default:
			http.Error(w, "type must be toggle_exercise, set_scent or toggle_item", http.StatusBadRequest)
			return
		}

		st, err := gw.ApplyEvent(r.Context(), chi.URLParam(r, "puppyID"), ProtocolTarget(t), ev)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toDevelopmentResponse(st))
	}
}

// addWeightHandler godoc
// @Summary Registrar peso
// @Description Agrega una pesada (gramos) y devuelve la curva reclasificada.
// @Tags development
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param puppyID path string true "ID del cachorro"
// @Param payload body addWeightRequest true "Pesada"
// @Success 200 {object} developmentResponse
// @Failure 400 {string} string "invalid json / peso o fecha inválidos"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "not found"
// @Failure 503 {string} string "persistence failure (cambio revertido)"
// @Router /puppies/{puppyID}/weights [post]
func addWeightHandler(gw *Gateway) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireClaims(w, r); !ok {
			return
		}

		var req addWeightRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		d, err := age.ParseDate(req.Date)
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD or RFC3339", http.StatusBadRequest)
			return
		}

		st, err := gw.ApplyEvent(r.Context(), chi.URLParam(r, "puppyID"), TargetWeight, AddWeight{Weight: req.Weight, Date: d})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toDevelopmentResponse(st))
	}
}

func requireClaims(w http.ResponseWriter, r *http.Request) (auth.Claims, bool) {
	c, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(c.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return auth.Claims{}, false
	}
	return c, true
}

// writeError traduce errores de dominio a status HTTP.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, ErrPersistence):
		http.Error(w, "persistence failure", http.StatusServiceUnavailable)
	case errors.Is(err, ErrUnavailable),
		errors.Is(err, protocols.ErrProtocolLocked),
		errors.Is(err, protocols.ErrDayOutOfWindow),
		errors.Is(err, protocols.ErrDayNotYetOpen):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, protocols.ErrUnknownProtocol),
		errors.Is(err, protocols.ErrUnknownExercise),
		errors.Is(err, protocols.ErrUnknownItem),
		errors.Is(err, protocols.ErrEventMismatch),
		errors.Is(err, growth.ErrInvalidWeight),
		errors.Is(err, age.ErrInvalidDate):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toLitterResponse(l Litter) litterResponse {
	return litterResponse{
		ID:        l.ID,
		Name:      l.Name,
		DamName:   l.DamName,
		SireName:  l.SireName,
		BirthDate: l.BirthDate,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

func toPuppyResponse(p Puppy) puppyResponse {
	return puppyResponse{
		ID:          p.ID,
		LitterID:    p.LitterID,
		Name:        p.Name,
		Sex:         p.Sex,
		Color:       p.Color,
		BirthWeight: p.BirthWeight,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toDevelopmentResponse(d DerivedState) developmentResponse {
	return developmentResponse{
		PuppyID:   d.PuppyID,
		LitterID:  d.LitterID,
		AsOf:      d.AsOf,
		Available: d.Available,
		Protocols: d.Protocols,
		Summary:   d.Summary,
		Growth:    d.Growth,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
