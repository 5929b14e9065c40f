package httpapi

import "net/http"

// NewMux returns the raw mux so main() can still attach /shutdown (needs srv+token).
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Jobs
	jh := JobsHandler{DB: d.DB, Hub: d.Hub, Engine: d.Engine, CfgVal: d.CfgVal}
	mux.HandleFunc("/jobs", methodMux(map[string]http.HandlerFunc{
		http.MethodGet:  jh.List,
		http.MethodPost: jh.Create,
	}))
	mux.HandleFunc("/jobs/search", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: jh.Search,
	}))
	mux.HandleFunc("/jobs/featured", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: jh.Featured,
	}))
	mux.HandleFunc("/jobs/", jh.ByPath) // GET/DELETE /jobs/{id}

	// Stats
	sth := StatsHandler{DB: d.DB}
	mux.HandleFunc("/stats/salary-ranges", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sth.SalaryRanges,
	}))
	mux.HandleFunc("/stats/sources", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sth.Sources,
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))

	// Secrets
	sh := SecretsHandler{}
	mux.HandleFunc("/api/secrets/gemini", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.SetGeminiKey,
	}))

	// Scrape
	sch := ScrapeHandler{
		DB:           d.DB,
		CfgVal:       d.CfgVal,
		ScrapeStatus: d.ScrapeStatus,
		Hub:          d.Hub,
		RunScrape:    d.RunScrape,
	}
	mux.HandleFunc("/scrape/status", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sch.Status,
	}))
	mux.HandleFunc("/scrape/run", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sch.Run,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	// DB maintenance
	dh := DBHandler{DB: d.DB}
	mux.HandleFunc("/db/checkpoint", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: dh.Checkpoint,
	}))

	// Health
	hh := HealthHandler{}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	return mux
}
