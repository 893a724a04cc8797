package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// HealthCheck is the per-dependency entry in the /healthz response.
type HealthCheck struct {
	Status string `json:"status"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Quizroom API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Backend API for the quizroom trivia game.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of backend dependencies.")
	getHealthz.AddRespStructure(map[string]HealthCheck{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(map[string]HealthCheck{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// POST /api/rooms/{code}/create
	postCreate, _ := r.NewOperationContext(http.MethodPost, "/api/rooms/{code}/create")
	postCreate.SetSummary("Create or reset a room")
	postCreate.SetDescription("Installs a scenario and resets the room to the lobby. Omitted fields fall back to the current mode and the built-in scenario.")
	postCreate.AddReqStructure(CreateRequest{})
	postCreate.AddRespStructure(CreateResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(postCreate)

	// POST /api/rooms/{code}/join
	postJoin, _ := r.NewOperationContext(http.MethodPost, "/api/rooms/{code}/join")
	postJoin.SetSummary("Join a room")
	postJoin.SetDescription("Registers a player and returns the assigned player id with a redacted room view.")
	postJoin.AddReqStructure(JoinRequest{})
	postJoin.AddRespStructure(JoinResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postJoin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(postJoin)

	// POST /api/rooms/{code}/start
	postStart, _ := r.NewOperationContext(http.MethodPost, "/api/rooms/{code}/start")
	postStart.SetSummary("Start the game")
	postStart.SetDescription("Moves the room from the lobby into the first round. Rejected outside the lobby.")
	postStart.AddRespStructure(StartResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postStart.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(postStart)

	// GET /api/rooms/{code}/current
	getCurrent, _ := r.NewOperationContext(http.MethodGet, "/api/rooms/{code}/current")
	getCurrent.SetSummary("Current round")
	getCurrent.SetDescription("Returns the active round with correctness flags stripped, or a null round outside a round.")
	getCurrent.AddRespStructure(CurrentResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getCurrent)

	// POST /api/rooms/{code}/answer
	postAnswer, _ := r.NewOperationContext(http.MethodPost, "/api/rooms/{code}/answer")
	postAnswer.SetSummary("Submit answer")
	postAnswer.SetDescription("Records the player's first answer for the current round. Repeats return the stored outcome.")
	postAnswer.AddReqStructure(AnswerRequest{})
	postAnswer.AddRespStructure(AnswerResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postAnswer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(postAnswer)

	// POST /api/rooms/{code}/next
	postNext, _ := r.NewOperationContext(http.MethodPost, "/api/rooms/{code}/next")
	postNext.SetSummary("Advance to the next round")
	postNext.SetDescription("Advances the round index, or finishes the game after the last round. Rejected outside a round.")
	postNext.AddRespStructure(NextResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postNext.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(postNext)

	// GET /api/rooms/{code}/scoreboard
	getScoreboard, _ := r.NewOperationContext(http.MethodGet, "/api/rooms/{code}/scoreboard")
	getScoreboard.SetSummary("Scoreboard")
	getScoreboard.SetDescription("Returns players ranked by score, ties broken by join order.")
	getScoreboard.AddRespStructure(ScoreboardResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getScoreboard)

	// POST /api/host/login
	postLogin, _ := r.NewOperationContext(http.MethodPost, "/api/host/login")
	postLogin.SetSummary("Host login")
	postLogin.SetDescription("Authenticate with email and password. Sets host_session cookie.")
	postLogin.AddReqStructure(HostLoginRequest{})
	postLogin.AddRespStructure(HostMeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postLogin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postLogin)

	// POST /api/host/logout
	postLogout, _ := r.NewOperationContext(http.MethodPost, "/api/host/logout")
	postLogout.SetSummary("Host logout")
	postLogout.SetDescription("Clears the host session and cookie.")
	postLogout.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(postLogout)

	// GET /api/host/me
	getMe, _ := r.NewOperationContext(http.MethodGet, "/api/host/me")
	getMe.SetSummary("Current host")
	getMe.SetDescription("Returns the currently authenticated host. Requires host_session cookie.")
	getMe.AddRespStructure(HostMeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getMe.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getMe)

	// GET /api/host/scenarios
	listScenarios, _ := r.NewOperationContext(http.MethodGet, "/api/host/scenarios")
	listScenarios.SetSummary("List scenarios")
	listScenarios.SetDescription("Returns all scenarios with round counts. Requires host_session cookie.")
	listScenarios.AddRespStructure([]ScenarioSummary{}, openapi.WithHTTPStatus(http.StatusOK))
	listScenarios.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(listScenarios)

	// POST /api/host/scenarios
	createScenario, _ := r.NewOperationContext(http.MethodPost, "/api/host/scenarios")
	createScenario.SetSummary("Create scenario")
	createScenario.SetDescription("Creates a scenario with rounds. Requires host_session cookie.")
	createScenario.AddReqStructure(ScenarioRequest{})
	createScenario.AddRespStructure(ScenarioDetail{}, openapi.WithHTTPStatus(http.StatusCreated))
	createScenario.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	createScenario.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(createScenario)

	// GET /api/host/scenarios/{id}
	getScenario, _ := r.NewOperationContext(http.MethodGet, "/api/host/scenarios/{id}")
	getScenario.SetSummary("Get scenario")
	getScenario.SetDescription("Returns a scenario with full round details. Requires host_session cookie.")
	getScenario.AddRespStructure(ScenarioDetail{}, openapi.WithHTTPStatus(http.StatusOK))
	getScenario.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	getScenario.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getScenario)

	// PUT /api/host/scenarios/{id}
	updateScenario, _ := r.NewOperationContext(http.MethodPut, "/api/host/scenarios/{id}")
	updateScenario.SetSummary("Update scenario")
	updateScenario.SetDescription("Replaces a scenario's title and rounds. Requires host_session cookie.")
	updateScenario.AddReqStructure(ScenarioRequest{})
	updateScenario.AddRespStructure(ScenarioDetail{}, openapi.WithHTTPStatus(http.StatusOK))
	updateScenario.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	updateScenario.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	updateScenario.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(updateScenario)

	// DELETE /api/host/scenarios/{id}
	deleteScenario, _ := r.NewOperationContext(http.MethodDelete, "/api/host/scenarios/{id}")
	deleteScenario.SetSummary("Delete scenario")
	deleteScenario.SetDescription("Deletes a scenario. Requires host_session cookie.")
	deleteScenario.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	deleteScenario.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	deleteScenario.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(deleteScenario)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
