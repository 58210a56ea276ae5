package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"
)

const apiPrefix = "/office/api/v1"

// Router uses the standard library http.ServeMux (avoids pulling in a
// third-party router dependency).
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// pathID extracts the trailing id segment after prefix, rejecting nested
// paths.
func pathID(path, prefix string) string {
	id := strings.TrimPrefix(path, prefix)
	if id == "" || strings.Contains(id, "/") {
		return ""
	}
	return id
}

func (r *Router) RegisterCitizenRoutes(h *CitizensHandler) {
	r.Handle(apiPrefix+"/citizens", func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case http.MethodGet:
			h.List(w, req)
		case http.MethodPost:
			h.Create(w, req)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})

	r.Handle(apiPrefix+"/citizens/export", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.Export(w, req)
	})

	r.Handle(apiPrefix+"/citizens/", func(w http.ResponseWriter, req *http.Request) {
		id := pathID(req.URL.Path, apiPrefix+"/citizens/")
		if id == "" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		switch req.Method {
		case http.MethodGet:
			h.Get(w, req, id)
		case http.MethodPut:
			h.Update(w, req, id)
		case http.MethodDelete:
			h.Delete(w, req, id)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
}

func (r *Router) RegisterMilitaryRoutes(h *MilitaryHandler) {
	r.Handle(apiPrefix+"/military", func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case http.MethodGet:
			h.List(w, req)
		case http.MethodPost:
			h.Create(w, req)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})

	r.Handle(apiPrefix+"/military/export", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.Export(w, req)
	})

	r.Handle(apiPrefix+"/military/", func(w http.ResponseWriter, req *http.Request) {
		id := pathID(req.URL.Path, apiPrefix+"/military/")
		if id == "" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		switch req.Method {
		case http.MethodGet:
			h.Get(w, req, id)
		case http.MethodPut:
			h.Update(w, req, id)
		case http.MethodDelete:
			h.Delete(w, req, id)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
}

func (r *Router) RegisterRequestRoutes(h *RequestsHandler) {
	r.Handle(apiPrefix+"/requests", func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case http.MethodGet:
			h.List(w, req)
		case http.MethodPost:
			h.Create(w, req)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})

	r.Handle(apiPrefix+"/requests/", func(w http.ResponseWriter, req *http.Request) {
		id := pathID(req.URL.Path, apiPrefix+"/requests/")
		if id == "" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		switch req.Method {
		case http.MethodGet:
			h.Get(w, req, id)
		case http.MethodPut:
			h.Update(w, req, id)
		case http.MethodDelete:
			h.Delete(w, req, id)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
}

func (r *Router) RegisterReminderRoutes(h *RemindersHandler) {
	r.Handle(apiPrefix+"/reminders", func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case http.MethodGet:
			h.List(w, req)
		case http.MethodPost:
			h.Create(w, req)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})

	r.Handle(apiPrefix+"/reminders/seed-holidays", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.SeedHolidays(w, req)
	})

	r.Handle(apiPrefix+"/reminders/seed-overdue", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.SeedOverdue(w, req)
	})

	r.Handle(apiPrefix+"/reminders/", func(w http.ResponseWriter, req *http.Request) {
		rest := strings.TrimPrefix(req.URL.Path, apiPrefix+"/reminders/")
		if rest == "" {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		// reminders/{id}/toggle
		if id, ok := strings.CutSuffix(rest, "/toggle"); ok {
			if req.Method != http.MethodPost || id == "" || strings.Contains(id, "/") {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			h.Toggle(w, req, id)
			return
		}

		if strings.Contains(rest, "/") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		switch req.Method {
		case http.MethodPut:
			h.Update(w, req, rest)
		case http.MethodDelete:
			h.Delete(w, req, rest)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
}

func (r *Router) RegisterStatsRoutes(h *StatsHandler) {
	r.Handle(apiPrefix+"/stats/dashboard", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.Dashboard(w, req)
	})

	r.Handle(apiPrefix+"/stats/activity", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.Activity(w, req)
	})
}

func (r *Router) RegisterUserRoutes(h *UsersHandler) {
	r.Handle(apiPrefix+"/users", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.List(w, req)
	})

	r.Handle(apiPrefix+"/users/", func(w http.ResponseWriter, req *http.Request) {
		rest := strings.TrimPrefix(req.URL.Path, apiPrefix+"/users/")
		if rest == "" {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		// users/{id}/login
		if id, ok := strings.CutSuffix(rest, "/login"); ok {
			if req.Method != http.MethodPost || id == "" || strings.Contains(id, "/") {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			h.RecordLogin(w, req, id)
			return
		}

		if strings.Contains(rest, "/") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if req.Method != http.MethodPut {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.Update(w, req, rest)
	})
}
