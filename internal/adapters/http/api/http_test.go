package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/stevillis/megasena/internal/adapters/http/api"
	importer "github.com/stevillis/megasena/internal/adapters/importer"
	repository "github.com/stevillis/megasena/internal/adapters/repository"
	"github.com/stevillis/megasena/internal/adapters/results"
	service "github.com/stevillis/megasena/internal/app"
	"github.com/stevillis/megasena/internal/domain/analysis"
	"github.com/stevillis/megasena/internal/domain/generate"
	"github.com/stevillis/megasena/internal/domain/model"
	"github.com/stevillis/megasena/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

// Mock implementations for testing
type mockValidator struct {
	err error
}

func (m *mockValidator) Validate(nums []int) (types.NumberSet, error) {
	if m.err != nil {
		return types.NumberSet{}, m.err
	}
	return types.NewNumberSet(nums...)
}

type mockAnalyzer struct {
	report       model.FrequencyReport
	ranking      []model.RankedNumber
	comboReport  model.ComboFrequencyReport
	comboRanking []model.RankedCombo
	freqErr      error
	comboErr     error

	gotScope api.DrawScope
	gotTopN  int
	gotK     int
}

func (m *mockAnalyzer) NumberFrequency(ctx context.Context, scope api.DrawScope, topN int) (model.FrequencyReport, []model.RankedNumber, error) {
	m.gotScope, m.gotTopN = scope, topN
	if m.freqErr != nil {
		return model.FrequencyReport{}, nil, m.freqErr
	}
	return m.report, m.ranking, nil
}

func (m *mockAnalyzer) ComboFrequency(ctx context.Context, scope api.DrawScope, k, topN int) (model.ComboFrequencyReport, []model.RankedCombo, error) {
	m.gotScope, m.gotK, m.gotTopN = scope, k, topN
	if m.comboErr != nil {
		return model.ComboFrequencyReport{}, nil, m.comboErr
	}
	return m.comboReport, m.comboRanking, nil
}

type mockMatcher struct {
	result  model.MatchResult
	results []model.MatchResult
	evalErr error
	simErr  error

	gotNums    []int
	gotContest int
	gotScope   api.DrawScope
}

func (m *mockMatcher) Evaluate(ctx context.Context, nums []int, contest int) (model.MatchResult, error) {
	m.gotNums, m.gotContest = nums, contest
	if m.evalErr != nil {
		return model.MatchResult{}, m.evalErr
	}
	return m.result, nil
}

func (m *mockMatcher) Simulate(ctx context.Context, nums []int, scope api.DrawScope) ([]model.MatchResult, error) {
	m.gotNums, m.gotScope = nums, scope
	if m.simErr != nil {
		return nil, m.simErr
	}
	return m.results, nil
}

type mockRegistry struct {
	draws       []model.Draw
	matches     []model.DrawMatch
	syncReport  model.SyncReport
	registerErr error
	listErr     error
	searchErr   error
	syncErr     error

	registered []model.Draw
	gotScope   api.DrawScope
	gotLimit   int
	gotMode    api.SearchMode
	gotUpTo    int
}

func (m *mockRegistry) RegisterDraw(ctx context.Context, contest int, date time.Time, nums []int) (model.Draw, error) {
	if m.registerErr != nil {
		return model.Draw{}, m.registerErr
	}
	set, err := types.NewNumberSet(nums...)
	if err != nil {
		return model.Draw{}, err
	}
	draw, err := model.NewDraw(contest, date, set)
	if err != nil {
		return model.Draw{}, err
	}
	m.registered = append(m.registered, draw)
	return draw, nil
}

func (m *mockRegistry) ListDraws(ctx context.Context, scope api.DrawScope, limit int) ([]model.Draw, error) {
	m.gotScope, m.gotLimit = scope, limit
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.draws, nil
}

func (m *mockRegistry) SearchDraws(ctx context.Context, nums []int, mode api.SearchMode) ([]model.DrawMatch, error) {
	m.gotMode = mode
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.matches, nil
}

func (m *mockRegistry) SyncDraws(ctx context.Context, upTo int) (model.SyncReport, error) {
	m.gotUpTo = upTo
	if m.syncErr != nil {
		return model.SyncReport{}, m.syncErr
	}
	return m.syncReport, nil
}

type mockImporter struct {
	report model.ImportReport
	err    error

	gotPolicy importer.DuplicatePolicy
	rows      int
}

func (m *mockImporter) ImportDraws(ctx context.Context, src importer.RowSource, policy importer.DuplicatePolicy) (model.ImportReport, error) {
	m.gotPolicy = policy
	for {
		if _, err := src.Next(); err != nil {
			break
		}
		m.rows++
	}
	if m.err != nil {
		return model.ImportReport{}, m.err
	}
	return m.report, nil
}

type mockGuesser struct {
	guesses  []model.Guess
	checks   []model.GuessCheck
	genErr   error
	listErr  error
	checkErr error
	patchErr error

	gotScope     api.GuessScope
	gotFixed     []int
	gotCount     int
	gotCommit    bool
	gotContest   int
	gotMinHits   int
	gotID        uuid.UUID
	gotCommitted bool
}

func (m *mockGuesser) Generate(ctx context.Context, fixed []int, count int, commit bool) ([]model.Guess, error) {
	m.gotFixed, m.gotCount, m.gotCommit = fixed, count, commit
	if m.genErr != nil {
		return nil, m.genErr
	}
	return m.guesses, nil
}

func (m *mockGuesser) ListGuesses(ctx context.Context, scope api.GuessScope) ([]model.Guess, error) {
	m.gotScope = scope
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.guesses, nil
}

func (m *mockGuesser) CheckGuesses(ctx context.Context, contest, minHits int) ([]model.GuessCheck, error) {
	m.gotContest, m.gotMinHits = contest, minHits
	if m.checkErr != nil {
		return nil, m.checkErr
	}
	return m.checks, nil
}

func (m *mockGuesser) SetCommitted(ctx context.Context, id uuid.UUID, committed bool) error {
	m.gotID, m.gotCommitted = id, committed
	return m.patchErr
}

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return m.stats
}

// mustDraw builds a canned draw for handler fixtures.
func mustDraw(contest int, iso string, nums []int) model.Draw {
	set, err := types.NewNumberSet(nums...)
	if err != nil {
		panic(err)
	}
	date, err := time.Parse("2006-01-02", iso)
	if err != nil {
		panic(err)
	}
	draw, err := model.NewDraw(contest, date, set)
	if err != nil {
		panic(err)
	}
	return draw
}

// mustGuess builds a canned guess for handler fixtures.
func mustGuess(nums, fixed []int, committed bool) model.Guess {
	set, err := types.NewNumberSet(nums...)
	if err != nil {
		panic(err)
	}
	fs, err := types.NewFixedSubset(fixed...)
	if err != nil {
		panic(err)
	}
	return model.NewGuess(set, fs, committed, time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC))
}

func TestServer_Register(t *testing.T) {
	Convey("Given a new API server", t, func() {
		deps := &mockDependencies{
			validator: &mockValidator{},
			analyzer:  &mockAnalyzer{},
			matcher:   &mockMatcher{},
			registry:  &mockRegistry{},
			importer:  &mockImporter{},
			guesser:   &mockGuesser{},
		}
		statsProvider := &mockStatsProvider{stats: map[string]interface{}{"started": true}}
		server := api.NewServer(deps, statsProvider)
		mux := http.NewServeMux()

		Convey("When registering routes", func() {
			server.Register(context.Background(), mux)

			Convey("Then all expected routes should be registered", func() {
				So(mux, ShouldNotBeNil)
			})

			Convey("And health endpoint should be accessible", func() {
				req := httptest.NewRequest("GET", "/healthz", nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)
			})

			Convey("And stats endpoint should be accessible", func() {
				req := httptest.NewRequest("GET", "/stats", nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)
			})

			Convey("And validate endpoint should be accessible", func() {
				req := httptest.NewRequest("POST", "/api/v1/validate", strings.NewReader(`{}`))
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				So(w.Code, ShouldEqual, http.StatusBadRequest) // Empty pick
			})

			Convey("And frequency endpoint should be accessible", func() {
				req := httptest.NewRequest("GET", "/api/v1/frequency", nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)
			})

			Convey("And draws endpoint should be accessible", func() {
				req := httptest.NewRequest("GET", "/api/v1/draws", nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)
			})

			Convey("And guesses endpoint should be accessible", func() {
				req := httptest.NewRequest("GET", "/api/v1/guesses", nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)
			})

			Convey("And generate endpoint should win over the guess subtree", func() {
				req := httptest.NewRequest("POST", "/api/v1/guesses/generate", strings.NewReader(`{"fixed":[],"count":1}`))
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				So(w.Code, ShouldEqual, http.StatusCreated)
			})

			Convey("And guesses by id should be routed through the subtree", func() {
				id := uuid.New()
				req := httptest.NewRequest("PATCH", "/api/v1/guesses/"+id.String(), strings.NewReader(`{"committed":true}`))
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				So(w.Code, ShouldEqual, http.StatusNoContent)
				So(deps.guesser.gotID, ShouldEqual, id)
			})

			Convey("And root endpoint should catch everything else", func() {
				req := httptest.NewRequest("GET", "/unknown", nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})

			Convey("And dashboard endpoint should serve HTML with refresh control", func() {
				req := httptest.NewRequest("GET", "/dashboard", nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)
				body := w.Body.String()
				So(body, ShouldContainSubstring, "id=\"refresh-interval\"")
				So(body, ShouldContainSubstring, "id=\"refresh-control\"")
			})
		})
	})
}

func TestValidateHandler_HandleValidate(t *testing.T) {
	Convey("Given a validate handler", t, func() {
		handler := api.NewValidateHandler(&mockValidator{})

		Convey("When handling a valid pick", func() {
			body := `{"numbers":[42,23,4,16,8,15]}`
			req := httptest.NewRequest("POST", "/api/v1/validate", strings.NewReader(body))
			w := httptest.NewRecorder()

			Convey("Then it should return the normalized set", func() {
				handler.HandleValidate(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)

				var response validateResponse
				err := json.NewDecoder(w.Body).Decode(&response)
				So(err, ShouldBeNil)
				So(response.Numbers, ShouldResemble, []int{4, 8, 15, 16, 23, 42})
				So(response.Key, ShouldEqual, "04-08-15-16-23-42")
			})
		})

		Convey("When handling an invalid JSON request", func() {
			req := httptest.NewRequest("POST", "/api/v1/validate", strings.NewReader(`{invalid json`))
			w := httptest.NewRecorder()

			Convey("Then it should return bad request status", func() {
				handler.HandleValidate(w, req)
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When handling a pick with the wrong count", func() {
			req := httptest.NewRequest("POST", "/api/v1/validate", strings.NewReader(`{"numbers":[1,2,3]}`))
			w := httptest.NewRecorder()

			Convey("Then it should return bad request with the error envelope", func() {
				handler.HandleValidate(w, req)
				So(w.Code, ShouldEqual, http.StatusBadRequest)

				var response errorResponse
				err := json.NewDecoder(w.Body).Decode(&response)
				So(err, ShouldBeNil)
				So(response.Error, ShouldEqual, "bad_request")
				So(response.Detail, ShouldContainSubstring, "invalid number set")
			})
		})

		Convey("When handling a non-POST request", func() {
			req := httptest.NewRequest("GET", "/api/v1/validate", nil)
			w := httptest.NewRecorder()

			Convey("Then it should return not found status", func() {
				handler.HandleValidate(w, req)
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestFrequencyHandler_HandleNumberFrequency(t *testing.T) {
	Convey("Given a frequency handler", t, func() {
		analyzer := &mockAnalyzer{
			report: model.FrequencyReport{
				Counts: map[int]int{4: 3, 8: 2},
				Draws:  3,
			},
			ranking: []model.RankedNumber{{Number: 4, Count: 3}, {Number: 8, Count: 2}},
		}
		handler := api.NewFrequencyHandler(analyzer)

		Convey("When requesting the full-history frequency", func() {
			req := httptest.NewRequest("GET", "/api/v1/frequency", nil)
			w := httptest.NewRecorder()

			Convey("Then it should return report and ranking", func() {
				handler.HandleNumberFrequency(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)

				var response frequencyResponse
				err := json.NewDecoder(w.Body).Decode(&response)
				So(err, ShouldBeNil)
				So(response.Report.Draws, ShouldEqual, 3)
				So(response.Report.Counts[4], ShouldEqual, 3)
				So(len(response.Ranking), ShouldEqual, 2)
				So(response.Ranking[0].Number, ShouldEqual, 4)
				So(analyzer.gotScope, ShouldResemble, api.DrawScope{})
				So(analyzer.gotTopN, ShouldEqual, 0)
			})
		})

		Convey("When narrowing scope and ranking size", func() {
			req := httptest.NewRequest("GET", "/api/v1/frequency?scope=special&from=10&to=20&top=2", nil)
			w := httptest.NewRecorder()

			Convey("Then the query should be passed through", func() {
				handler.HandleNumberFrequency(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)
				So(analyzer.gotScope.SpecialOnly, ShouldBeTrue)
				So(analyzer.gotScope.FromContest, ShouldEqual, 10)
				So(analyzer.gotScope.ToContest, ShouldEqual, 20)
				So(analyzer.gotTopN, ShouldEqual, 2)
			})
		})

		Convey("When the scope is unknown", func() {
			req := httptest.NewRequest("GET", "/api/v1/frequency?scope=weird", nil)
			w := httptest.NewRecorder()

			Convey("Then it should return bad request status", func() {
				handler.HandleNumberFrequency(w, req)
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the top parameter is not a number", func() {
			req := httptest.NewRequest("GET", "/api/v1/frequency?top=abc", nil)
			w := httptest.NewRecorder()

			Convey("Then it should return bad request status", func() {
				handler.HandleNumberFrequency(w, req)
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the analyzer fails", func() {
			analyzer.freqErr = fmt.Errorf("store gone")
			req := httptest.NewRequest("GET", "/api/v1/frequency", nil)
			w := httptest.NewRecorder()

			Convey("Then it should return internal server error", func() {
				handler.HandleNumberFrequency(w, req)
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
			})
		})

		Convey("When handling a non-GET request", func() {
			req := httptest.NewRequest("POST", "/api/v1/frequency", nil)
			w := httptest.NewRecorder()

			Convey("Then it should return not found status", func() {
				handler.HandleNumberFrequency(w, req)
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestFrequencyHandler_HandleComboFrequency(t *testing.T) {
	Convey("Given a frequency handler", t, func() {
		analyzer := &mockAnalyzer{
			comboReport: model.ComboFrequencyReport{
				K:      2,
				Counts: map[string]int{"04-08": 2, "04-15": 1},
				Draws:  3,
			},
			comboRanking: []model.RankedCombo{{Combo: "04-08", Count: 2}, {Combo: "04-15", Count: 1}},
		}
		handler := api.NewFrequencyHandler(analyzer)

		Convey("When requesting pair frequencies", func() {
			req := httptest.NewRequest("GET", "/api/v1/combinations?k=2&top=5", nil)
			w := httptest.NewRecorder()

			Convey("Then it should return the combo ranking", func() {
				handler.HandleComboFrequency(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)

				var response comboFrequencyResponse
				err := json.NewDecoder(w.Body).Decode(&response)
				So(err, ShouldBeNil)
				So(response.Report.K, ShouldEqual, 2)
				So(response.Ranking[0].Combo, ShouldEqual, "04-08")
				So(analyzer.gotK, ShouldEqual, 2)
				So(analyzer.gotTopN, ShouldEqual, 5)
			})
		})

		Convey("When the k parameter is missing", func() {
			req := httptest.NewRequest("GET", "/api/v1/combinations", nil)
			w := httptest.NewRecorder()

			Convey("Then it should return bad request status", func() {
				handler.HandleComboFrequency(w, req)
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the combination size is out of range", func() {
			analyzer.comboErr = fmt.Errorf("combinations: %w", analysis.ErrInvalidComboSize)
			req := httptest.NewRequest("GET", "/api/v1/combinations?k=7", nil)
			w := httptest.NewRecorder()

			Convey("Then it should return bad request with the error envelope", func() {
				handler.HandleComboFrequency(w, req)
				So(w.Code, ShouldEqual, http.StatusBadRequest)

				var response errorResponse
				err := json.NewDecoder(w.Body).Decode(&response)
				So(err, ShouldBeNil)
				So(response.Error, ShouldEqual, "bad_request")
			})
		})
	})
}

func TestMatchHandler_HandleEvaluate(t *testing.T) {
	Convey("Given a match handler", t, func() {
		matcher := &mockMatcher{
			result: model.MatchResult{Contest: 2870, Hits: 6, Tier: types.TierSena},
		}
		handler := api.NewMatchHandler(matcher)

		Convey("When evaluating a winning pick", func() {
			body := `{"numbers":[4,8,15,16,23,42],"contest":2870}`
			req := httptest.NewRequest("POST", "/api/v1/evaluate", strings.NewReader(body))
			w := httptest.NewRecorder()

			Convey("Then it should return the match result", func() {
				handler.HandleEvaluate(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)

				var response model.MatchResult
				err := json.NewDecoder(w.Body).Decode(&response)
				So(err, ShouldBeNil)
				So(response.Contest, ShouldEqual, 2870)
				So(response.Hits, ShouldEqual, 6)
				So(response.Tier, ShouldEqual, types.TierSena)
				So(matcher.gotContest, ShouldEqual, 2870)
			})
		})

		Convey("When the contest does not exist", func() {
			matcher.evalErr = fmt.Errorf("draw 999: %w", repository.ErrNotFound)
			body := `{"numbers":[4,8,15,16,23,42],"contest":999}`
			req := httptest.NewRequest("POST", "/api/v1/evaluate", strings.NewReader(body))
			w := httptest.NewRecorder()

			Convey("Then it should return not found with the error envelope", func() {
				handler.HandleEvaluate(w, req)
				So(w.Code, ShouldEqual, http.StatusNotFound)

				var response errorResponse
				err := json.NewDecoder(w.Body).Decode(&response)
				So(err, ShouldBeNil)
				So(response.Error, ShouldEqual, "not_found")
			})
		})

		Convey("When handling an invalid JSON request", func() {
			req := httptest.NewRequest("POST", "/api/v1/evaluate", strings.NewReader(`{invalid`))
			w := httptest.NewRecorder()

			Convey("Then it should return bad request status", func() {
				handler.HandleEvaluate(w, req)
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestMatchHandler_HandleSimulate(t *testing.T) {
	Convey("Given a match handler", t, func() {
		matcher := &mockMatcher{
			results: []model.MatchResult{
				{Contest: 101, Hits: 6, Tier: types.TierSena},
				{Contest: 103, Hits: 5, Tier: types.TierQuina},
			},
		}
		handler := api.NewMatchHandler(matcher)

		Convey("When simulating against the special draws", func() {
			body := `{"numbers":[4,8,15,16,23,42],"scope":"special"}`
			req := httptest.NewRequest("POST", "/api/v1/simulate", strings.NewReader(body))
			w := httptest.NewRecorder()

			Convey("Then it should return every prized result", func() {
				handler.HandleSimulate(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)

				var response []model.MatchResult
				err := json.NewDecoder(w.Body).Decode(&response)
				So(err, ShouldBeNil)
				So(len(response), ShouldEqual, 2)
				So(response[0].Tier, ShouldEqual, types.TierSena)
				So(matcher.gotScope.SpecialOnly, ShouldBeTrue)
			})
		})

		Convey("When no draw matches", func() {
			matcher.results = nil
			body := `{"numbers":[4,8,15,16,23,42]}`
			req := httptest.NewRequest("POST", "/api/v1/simulate", strings.NewReader(body))
			w := httptest.NewRecorder()

			Convey("Then it should return an empty array", func() {
				handler.HandleSimulate(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)
				So(strings.TrimSpace(w.Body.String()), ShouldEqual, "[]")
			})
		})

		Convey("When the scope is unknown", func() {
			body := `{"numbers":[4,8,15,16,23,42],"scope":"weird"}`
			req := httptest.NewRequest("POST", "/api/v1/simulate", strings.NewReader(body))
			w := httptest.NewRecorder()

			Convey("Then it should return bad request status", func() {
				handler.HandleSimulate(w, req)
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestDrawsHandler_HandleDraws(t *testing.T) {
	Convey("Given a draws handler", t, func() {
		registry := &mockRegistry{
			draws: []model.Draw{
				mustDraw(102, "2025-01-07", []int{4, 8, 15, 30, 45, 60}),
				mustDraw(101, "2025-01-04", []int{4, 8, 15, 16, 23, 42}),
			},
		}
		handler := api.NewDrawsHandler(registry)

		Convey("When listing draws", func() {
			req := httptest.NewRequest("GET", "/api/v1/draws?limit=10", nil)
			w := httptest.NewRecorder()

			Convey("Then it should return the stored draws", func() {
				handler.HandleDraws(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)

				var response []model.Draw
				err := json.NewDecoder(w.Body).Decode(&response)
				So(err, ShouldBeNil)
				So(len(response), ShouldEqual, 2)
				So(response[0].Contest, ShouldEqual, 102)
				So(registry.gotLimit, ShouldEqual, 10)
			})
		})

		Convey("When the limit is not a number", func() {
			req := httptest.NewRequest("GET", "/api/v1/draws?limit=abc", nil)
			w := httptest.NewRecorder()

			Convey("Then it should return bad request status", func() {
				handler.HandleDraws(w, req)
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When registering a draw with an ISO date", func() {
			body := `{"contest":2870,"date":"2025-01-09","numbers":[4,8,15,16,23,42]}`
			req := httptest.NewRequest("POST", "/api/v1/draws", strings.NewReader(body))
			w := httptest.NewRecorder()

			Convey("Then it should return the created draw", func() {
				handler.HandleDraws(w, req)
				So(w.Code, ShouldEqual, http.StatusCreated)

				var response model.Draw
				err := json.NewDecoder(w.Body).Decode(&response)
				So(err, ShouldBeNil)
				So(response.Contest, ShouldEqual, 2870)
				So(len(registry.registered), ShouldEqual, 1)
			})
		})

		Convey("When registering a draw with a day-first date", func() {
			body := `{"contest":2871,"date":"11/01/2025","numbers":[1,2,3,4,5,6]}`
			req := httptest.NewRequest("POST", "/api/v1/draws", strings.NewReader(body))
			w := httptest.NewRecorder()

			Convey("Then it should parse the date and create the draw", func() {
				handler.HandleDraws(w, req)
				So(w.Code, ShouldEqual, http.StatusCreated)
				So(registry.registered[0].Date.Month(), ShouldEqual, time.January)
				So(registry.registered[0].Date.Day(), ShouldEqual, 11)
			})
		})

		Convey("When registering a draw with a malformed date", func() {
			body := `{"contest":2870,"date":"someday","numbers":[4,8,15,16,23,42]}`
			req := httptest.NewRequest("POST", "/api/v1/draws", strings.NewReader(body))
			w := httptest.NewRecorder()

			Convey("Then it should return bad request status", func() {
				handler.HandleDraws(w, req)
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When registering a draw with too few numbers", func() {
			body := `{"contest":2870,"date":"2025-01-09","numbers":[1,2,3]}`
			req := httptest.NewRequest("POST", "/api/v1/draws", strings.NewReader(body))
			w := httptest.NewRecorder()

			Convey("Then it should return bad request status", func() {
				handler.HandleDraws(w, req)
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When registering a duplicate contest", func() {
			registry.registerErr = fmt.Errorf("draw 2870: %w", repository.ErrDuplicateContest)
			body := `{"contest":2870,"date":"2025-01-09","numbers":[4,8,15,16,23,42]}`
			req := httptest.NewRequest("POST", "/api/v1/draws", strings.NewReader(body))
			w := httptest.NewRecorder()

			Convey("Then it should return conflict with the error envelope", func() {
				handler.HandleDraws(w, req)
				So(w.Code, ShouldEqual, http.StatusConflict)

				var response errorResponse
				err := json.NewDecoder(w.Body).Decode(&response)
				So(err, ShouldBeNil)
				So(response.Error, ShouldEqual, "duplicate_contest")
			})
		})

		Convey("When handling an unsupported method", func() {
			req := httptest.NewRequest("DELETE", "/api/v1/draws", nil)
			w := httptest.NewRecorder()

			Convey("Then it should return not found status", func() {
				handler.HandleDraws(w, req)
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestDrawsHandler_HandleSearchDraws(t *testing.T) {
	Convey("Given a draws handler", t, func() {
		match := mustDraw(101, "2025-01-04", []int{4, 8, 15, 16, 23, 42})
		registry := &mockRegistry{
			matches: []model.DrawMatch{{Draw: match, Matched: []int{8, 15}}},
		}
		handler := api.NewDrawsHandler(registry)

		Convey("When searching with an explicit mode", func() {
			req := httptest.NewRequest("GET", "/api/v1/draws/search?numbers=8,15&mode=any", nil)
			w := httptest.NewRecorder()

			Convey("Then it should return draw matches", func() {
				handler.HandleSearchDraws(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)

				var response []model.DrawMatch
				err := json.NewDecoder(w.Body).Decode(&response)
				So(err, ShouldBeNil)
				So(len(response), ShouldEqual, 1)
				So(response[0].Draw.Contest, ShouldEqual, 101)
				So(response[0].Matched, ShouldResemble, []int{8, 15})
				So(registry.gotMode, ShouldEqual, api.SearchModeAny)
			})
		})

		Convey("When no mode is given", func() {
			req := httptest.NewRequest("GET", "/api/v1/draws/search?numbers=8,15", nil)
			w := httptest.NewRecorder()

			Convey("Then it should default to matching all numbers", func() {
				handler.HandleSearchDraws(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)
				So(registry.gotMode, ShouldEqual, api.SearchModeAll)
			})
		})

		Convey("When the numbers parameter is missing", func() {
			req := httptest.NewRequest("GET", "/api/v1/draws/search", nil)
			w := httptest.NewRecorder()

			Convey("Then it should return bad request status", func() {
				handler.HandleSearchDraws(w, req)
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the numbers parameter is malformed", func() {
			req := httptest.NewRequest("GET", "/api/v1/draws/search?numbers=4,x,15", nil)
			w := httptest.NewRecorder()

			Convey("Then it should return bad request status", func() {
				handler.HandleSearchDraws(w, req)
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the search mode is rejected by the service", func() {
			registry.searchErr = fmt.Errorf("%w: unknown search mode %q", service.ErrInvalidQuery, "weird")
			req := httptest.NewRequest("GET", "/api/v1/draws/search?numbers=8&mode=weird", nil)
			w := httptest.NewRecorder()

			Convey("Then it should return bad request status", func() {
				handler.HandleSearchDraws(w, req)
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestDrawsHandler_HandleSyncDraws(t *testing.T) {
	Convey("Given a draws handler", t, func() {
		registry := &mockRegistry{
			syncReport: model.SyncReport{From: 103, To: 110, Added: 8},
		}
		handler := api.NewDrawsHandler(registry)

		Convey("When requesting a sync", func() {
			req := httptest.NewRequest("POST", "/api/v1/draws/sync", strings.NewReader(`{"up_to":110}`))
			w := httptest.NewRecorder()

			Convey("Then it should return the sync report", func() {
				handler.HandleSyncDraws(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)

				var response model.SyncReport
				err := json.NewDecoder(w.Body).Decode(&response)
				So(err, ShouldBeNil)
				So(response.Added, ShouldEqual, 8)
				So(registry.gotUpTo, ShouldEqual, 110)
			})
		})

		Convey("When sync is not configured", func() {
			registry.syncErr = service.ErrSyncDisabled
			req := httptest.NewRequest("POST", "/api/v1/draws/sync", strings.NewReader(`{}`))
			w := httptest.NewRecorder()

			Convey("Then it should return service unavailable", func() {
				handler.HandleSyncDraws(w, req)
				So(w.Code, ShouldEqual, http.StatusServiceUnavailable)
			})
		})

		Convey("When the upstream API fails", func() {
			registry.syncErr = fmt.Errorf("sync contest 104: %w", results.ErrUpstream)
			req := httptest.NewRequest("POST", "/api/v1/draws/sync", strings.NewReader(`{"up_to":110}`))
			w := httptest.NewRecorder()

			Convey("Then it should return bad gateway with the error envelope", func() {
				handler.HandleSyncDraws(w, req)
				So(w.Code, ShouldEqual, http.StatusBadGateway)

				var response errorResponse
				err := json.NewDecoder(w.Body).Decode(&response)
				So(err, ShouldBeNil)
				So(response.Error, ShouldEqual, "sync_failed")
			})
		})

		Convey("When handling an invalid JSON request", func() {
			req := httptest.NewRequest("POST", "/api/v1/draws/sync", strings.NewReader(`{invalid`))
			w := httptest.NewRecorder()

			Convey("Then it should return bad request status", func() {
				handler.HandleSyncDraws(w, req)
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestImportHandler_HandleImportDraws(t *testing.T) {
	const csvBody = "Concurso,Data,Bola1,Bola2,Bola3,Bola4,Bola5,Bola6\n" +
		"2001,2025-01-02,4,8,15,16,23,42\n" +
		"2002,2025-01-05,1,12,23,34,45,56\n"

	Convey("Given an import handler", t, func() {
		imp := &mockImporter{report: model.ImportReport{Added: 2}}
		handler := api.NewImportHandler(imp)

		Convey("When importing a raw CSV body", func() {
			req := httptest.NewRequest("POST", "/api/v1/draws/import?format=csv", strings.NewReader(csvBody))
			w := httptest.NewRecorder()

			Convey("Then it should return the import report", func() {
				handler.HandleImportDraws(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)

				var response model.ImportReport
				err := json.NewDecoder(w.Body).Decode(&response)
				So(err, ShouldBeNil)
				So(response.Added, ShouldEqual, 2)
				So(imp.rows, ShouldEqual, 2)
				So(imp.gotPolicy, ShouldEqual, importer.DuplicateSkip)
			})
		})

		Convey("When importing through a multipart form", func() {
			var buf bytes.Buffer
			mw := multipart.NewWriter(&buf)
			fw, err := mw.CreateFormFile("file", "draws.csv")
			So(err, ShouldBeNil)
			_, err = fw.Write([]byte(csvBody))
			So(err, ShouldBeNil)
			So(mw.Close(), ShouldBeNil)

			req := httptest.NewRequest("POST", "/api/v1/draws/import?policy=replace", &buf)
			req.Header.Set("Content-Type", mw.FormDataContentType())
			w := httptest.NewRecorder()

			Convey("Then it should read the uploaded file", func() {
				handler.HandleImportDraws(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)
				So(imp.rows, ShouldEqual, 2)
				So(imp.gotPolicy, ShouldEqual, importer.DuplicateReplace)
			})
		})

		Convey("When the multipart form has no file field", func() {
			var buf bytes.Buffer
			mw := multipart.NewWriter(&buf)
			So(mw.WriteField("note", "no file here"), ShouldBeNil)
			So(mw.Close(), ShouldBeNil)

			req := httptest.NewRequest("POST", "/api/v1/draws/import", &buf)
			req.Header.Set("Content-Type", mw.FormDataContentType())
			w := httptest.NewRecorder()

			Convey("Then it should return bad request status", func() {
				handler.HandleImportDraws(w, req)
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the format is unknown", func() {
			req := httptest.NewRequest("POST", "/api/v1/draws/import?format=pdf", strings.NewReader(csvBody))
			w := httptest.NewRecorder()

			Convey("Then it should return bad request status", func() {
				handler.HandleImportDraws(w, req)
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the policy is unknown", func() {
			req := httptest.NewRequest("POST", "/api/v1/draws/import?policy=maybe", strings.NewReader(csvBody))
			w := httptest.NewRecorder()

			Convey("Then it should return bad request status", func() {
				handler.HandleImportDraws(w, req)
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the CSV header is unrecognized", func() {
			req := httptest.NewRequest("POST", "/api/v1/draws/import", strings.NewReader("foo,bar\n1,2\n"))
			w := httptest.NewRecorder()

			Convey("Then it should return bad request with the error envelope", func() {
				handler.HandleImportDraws(w, req)
				So(w.Code, ShouldEqual, http.StatusBadRequest)

				var response errorResponse
				err := json.NewDecoder(w.Body).Decode(&response)
				So(err, ShouldBeNil)
				So(response.Error, ShouldEqual, "bad_request")
			})
		})

		Convey("When handling a non-POST request", func() {
			req := httptest.NewRequest("GET", "/api/v1/draws/import", nil)
			w := httptest.NewRecorder()

			Convey("Then it should return not found status", func() {
				handler.HandleImportDraws(w, req)
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestGuessesHandler_HandleGuesses(t *testing.T) {
	Convey("Given a guesses handler", t, func() {
		guesser := &mockGuesser{
			guesses: []model.Guess{
				mustGuess([]int{4, 8, 15, 16, 23, 42}, []int{4, 8}, false),
				mustGuess([]int{1, 12, 23, 34, 45, 56}, nil, true),
			},
		}
		handler := api.NewGuessesHandler(guesser)

		Convey("When listing all guesses", func() {
			req := httptest.NewRequest("GET", "/api/v1/guesses", nil)
			w := httptest.NewRecorder()

			Convey("Then it should return the stored guesses", func() {
				handler.HandleGuesses(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)

				var response []model.Guess
				err := json.NewDecoder(w.Body).Decode(&response)
				So(err, ShouldBeNil)
				So(len(response), ShouldEqual, 2)
			})
		})

		Convey("When narrowing to committed guesses", func() {
			req := httptest.NewRequest("GET", "/api/v1/guesses?scope=committed", nil)
			w := httptest.NewRecorder()

			Convey("Then the scope should be passed through", func() {
				handler.HandleGuesses(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)
				So(guesser.gotScope, ShouldEqual, service.GuessScopeCommitted)
			})
		})

		Convey("When the scope is rejected by the service", func() {
			guesser.listErr = fmt.Errorf("%w: unknown guess scope %q", service.ErrInvalidQuery, "weird")
			req := httptest.NewRequest("GET", "/api/v1/guesses?scope=weird", nil)
			w := httptest.NewRecorder()

			Convey("Then it should return bad request status", func() {
				handler.HandleGuesses(w, req)
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestGuessesHandler_HandleGenerateGuesses(t *testing.T) {
	Convey("Given a guesses handler", t, func() {
		guesser := &mockGuesser{
			guesses: []model.Guess{
				mustGuess([]int{7, 23, 31, 44, 52, 60}, []int{7, 23}, false),
				mustGuess([]int{2, 7, 23, 38, 41, 59}, []int{7, 23}, false),
			},
		}
		handler := api.NewGuessesHandler(guesser)

		Convey("When generating guesses around a fixed pair", func() {
			body := `{"fixed":[7,23],"count":2}`
			req := httptest.NewRequest("POST", "/api/v1/guesses/generate", strings.NewReader(body))
			w := httptest.NewRecorder()

			Convey("Then it should return the created guesses", func() {
				handler.HandleGenerateGuesses(w, req)
				So(w.Code, ShouldEqual, http.StatusCreated)

				var response []model.Guess
				err := json.NewDecoder(w.Body).Decode(&response)
				So(err, ShouldBeNil)
				So(len(response), ShouldEqual, 2)
				So(guesser.gotFixed, ShouldResemble, []int{7, 23})
				So(guesser.gotCount, ShouldEqual, 2)
				So(guesser.gotCommit, ShouldBeFalse)
			})
		})

		Convey("When committing the generated batch", func() {
			body := `{"fixed":[],"count":1,"commit":true}`
			req := httptest.NewRequest("POST", "/api/v1/guesses/generate", strings.NewReader(body))
			w := httptest.NewRecorder()

			Convey("Then the commit flag should be passed through", func() {
				handler.HandleGenerateGuesses(w, req)
				So(w.Code, ShouldEqual, http.StatusCreated)
				So(guesser.gotCommit, ShouldBeTrue)
			})
		})

		Convey("When the batch size is out of range", func() {
			guesser.genErr = fmt.Errorf("batch: %w", generate.ErrInvalidBatchSize)
			body := `{"fixed":[],"count":0}`
			req := httptest.NewRequest("POST", "/api/v1/guesses/generate", strings.NewReader(body))
			w := httptest.NewRecorder()

			Convey("Then it should return bad request status", func() {
				handler.HandleGenerateGuesses(w, req)
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When generation runs out of fresh sets", func() {
			guesser.genErr = fmt.Errorf("batch: %w", generate.ErrGenerationExhausted)
			body := `{"fixed":[7,23],"count":50}`
			req := httptest.NewRequest("POST", "/api/v1/guesses/generate", strings.NewReader(body))
			w := httptest.NewRecorder()

			Convey("Then it should return unprocessable entity with the error envelope", func() {
				handler.HandleGenerateGuesses(w, req)
				So(w.Code, ShouldEqual, http.StatusUnprocessableEntity)

				var response errorResponse
				err := json.NewDecoder(w.Body).Decode(&response)
				So(err, ShouldBeNil)
				So(response.Error, ShouldEqual, "generation_exhausted")
			})
		})

		Convey("When handling an invalid JSON request", func() {
			req := httptest.NewRequest("POST", "/api/v1/guesses/generate", strings.NewReader(`{invalid`))
			w := httptest.NewRecorder()

			Convey("Then it should return bad request status", func() {
				handler.HandleGenerateGuesses(w, req)
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestGuessesHandler_HandleCheckGuesses(t *testing.T) {
	Convey("Given a guesses handler", t, func() {
		winner := mustGuess([]int{4, 8, 15, 16, 23, 42}, nil, true)
		guesser := &mockGuesser{
			checks: []model.GuessCheck{{Guess: winner, Hits: 6, Tier: types.TierSena}},
		}
		handler := api.NewGuessesHandler(guesser)

		Convey("When checking guesses against a contest", func() {
			body := `{"contest":2870,"min_hits":4}`
			req := httptest.NewRequest("POST", "/api/v1/guesses/check", strings.NewReader(body))
			w := httptest.NewRecorder()

			Convey("Then it should return the matching checks", func() {
				handler.HandleCheckGuesses(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)

				var response []model.GuessCheck
				err := json.NewDecoder(w.Body).Decode(&response)
				So(err, ShouldBeNil)
				So(len(response), ShouldEqual, 1)
				So(response[0].Hits, ShouldEqual, 6)
				So(response[0].Tier, ShouldEqual, types.TierSena)
				So(guesser.gotContest, ShouldEqual, 2870)
				So(guesser.gotMinHits, ShouldEqual, 4)
			})
		})

		Convey("When the contest does not exist", func() {
			guesser.checkErr = fmt.Errorf("draw 999: %w", repository.ErrNotFound)
			body := `{"contest":999,"min_hits":4}`
			req := httptest.NewRequest("POST", "/api/v1/guesses/check", strings.NewReader(body))
			w := httptest.NewRecorder()

			Convey("Then it should return not found status", func() {
				handler.HandleCheckGuesses(w, req)
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When no guess reaches the threshold", func() {
			guesser.checks = nil
			body := `{"contest":2870,"min_hits":6}`
			req := httptest.NewRequest("POST", "/api/v1/guesses/check", strings.NewReader(body))
			w := httptest.NewRecorder()

			Convey("Then it should return an empty array", func() {
				handler.HandleCheckGuesses(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)
				So(strings.TrimSpace(w.Body.String()), ShouldEqual, "[]")
			})
		})
	})
}

func TestGuessesHandler_HandleGuessByID(t *testing.T) {
	Convey("Given a guesses handler", t, func() {
		guesser := &mockGuesser{}
		handler := api.NewGuessesHandler(guesser)
		id := uuid.New()

		Convey("When committing a guess", func() {
			req := httptest.NewRequest("PATCH", "/api/v1/guesses/"+id.String(), strings.NewReader(`{"committed":true}`))
			w := httptest.NewRecorder()

			Convey("Then it should return no content", func() {
				handler.HandleGuessByID(w, req)
				So(w.Code, ShouldEqual, http.StatusNoContent)
				So(guesser.gotID, ShouldEqual, id)
				So(guesser.gotCommitted, ShouldBeTrue)
			})
		})

		Convey("When reverting a guess to a suggestion", func() {
			req := httptest.NewRequest("PATCH", "/api/v1/guesses/"+id.String(), strings.NewReader(`{"committed":false}`))
			w := httptest.NewRecorder()

			Convey("Then the committed flag should be passed through", func() {
				handler.HandleGuessByID(w, req)
				So(w.Code, ShouldEqual, http.StatusNoContent)
				So(guesser.gotCommitted, ShouldBeFalse)
			})
		})

		Convey("When the committed field is missing", func() {
			req := httptest.NewRequest("PATCH", "/api/v1/guesses/"+id.String(), strings.NewReader(`{}`))
			w := httptest.NewRecorder()

			Convey("Then it should return bad request status", func() {
				handler.HandleGuessByID(w, req)
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the id is not a UUID", func() {
			req := httptest.NewRequest("PATCH", "/api/v1/guesses/not-a-uuid", strings.NewReader(`{"committed":true}`))
			w := httptest.NewRecorder()

			Convey("Then it should return bad request status", func() {
				handler.HandleGuessByID(w, req)
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the guess does not exist", func() {
			guesser.patchErr = fmt.Errorf("guess %s: %w", id, repository.ErrNotFound)
			req := httptest.NewRequest("PATCH", "/api/v1/guesses/"+id.String(), strings.NewReader(`{"committed":true}`))
			w := httptest.NewRecorder()

			Convey("Then it should return not found status", func() {
				handler.HandleGuessByID(w, req)
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When handling a non-PATCH request", func() {
			req := httptest.NewRequest("GET", "/api/v1/guesses/"+id.String(), nil)
			w := httptest.NewRecorder()

			Convey("Then it should return not found status", func() {
				handler.HandleGuessByID(w, req)
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestHealthHandler_HandleHealth(t *testing.T) {
	Convey("Given a health handler", t, func() {
		handler := api.NewHealthHandler()

		Convey("When handling health check request", func() {
			req := httptest.NewRequest("GET", "/healthz", nil)
			w := httptest.NewRecorder()

			Convey("Then it should return OK status", func() {
				handler.HandleHealth(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)
			})
		})
	})
}

func TestStatsHandler_HandleStats(t *testing.T) {
	Convey("Given a stats handler", t, func() {
		mockStats := &mockStatsProvider{
			stats: map[string]interface{}{
				"draws":   2870,
				"guesses": 12,
			},
		}
		handler := api.NewStatsHandler(mockStats)

		Convey("When handling stats request", func() {
			req := httptest.NewRequest("GET", "/stats", nil)
			w := httptest.NewRecorder()

			Convey("Then it should return stats", func() {
				handler.HandleStats(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)

				var response map[string]interface{}
				err := json.NewDecoder(w.Body).Decode(&response)
				So(err, ShouldBeNil)
				So(response["draws"], ShouldEqual, 2870)
				So(response["guesses"], ShouldEqual, 12)
			})
		})
	})
}

// Mock dependencies that implements the Dependencies interface
type mockDependencies struct {
	validator *mockValidator
	analyzer  *mockAnalyzer
	matcher   *mockMatcher
	registry  *mockRegistry
	importer  *mockImporter
	guesser   *mockGuesser
}

func (m *mockDependencies) Validate(nums []int) (types.NumberSet, error) {
	return m.validator.Validate(nums)
}

func (m *mockDependencies) NumberFrequency(ctx context.Context, scope api.DrawScope, topN int) (model.FrequencyReport, []model.RankedNumber, error) {
	return m.analyzer.NumberFrequency(ctx, scope, topN)
}

func (m *mockDependencies) ComboFrequency(ctx context.Context, scope api.DrawScope, k, topN int) (model.ComboFrequencyReport, []model.RankedCombo, error) {
	return m.analyzer.ComboFrequency(ctx, scope, k, topN)
}

func (m *mockDependencies) Evaluate(ctx context.Context, nums []int, contest int) (model.MatchResult, error) {
	return m.matcher.Evaluate(ctx, nums, contest)
}

func (m *mockDependencies) Simulate(ctx context.Context, nums []int, scope api.DrawScope) ([]model.MatchResult, error) {
	return m.matcher.Simulate(ctx, nums, scope)
}

func (m *mockDependencies) RegisterDraw(ctx context.Context, contest int, date time.Time, nums []int) (model.Draw, error) {
	return m.registry.RegisterDraw(ctx, contest, date, nums)
}

func (m *mockDependencies) ListDraws(ctx context.Context, scope api.DrawScope, limit int) ([]model.Draw, error) {
	return m.registry.ListDraws(ctx, scope, limit)
}

func (m *mockDependencies) SearchDraws(ctx context.Context, nums []int, mode api.SearchMode) ([]model.DrawMatch, error) {
	return m.registry.SearchDraws(ctx, nums, mode)
}

func (m *mockDependencies) ImportDraws(ctx context.Context, src importer.RowSource, policy importer.DuplicatePolicy) (model.ImportReport, error) {
	return m.importer.ImportDraws(ctx, src, policy)
}

func (m *mockDependencies) SyncDraws(ctx context.Context, upTo int) (model.SyncReport, error) {
	return m.registry.SyncDraws(ctx, upTo)
}

func (m *mockDependencies) Generate(ctx context.Context, fixed []int, count int, commit bool) ([]model.Guess, error) {
	return m.guesser.Generate(ctx, fixed, count, commit)
}

func (m *mockDependencies) ListGuesses(ctx context.Context, scope api.GuessScope) ([]model.Guess, error) {
	return m.guesser.ListGuesses(ctx, scope)
}

func (m *mockDependencies) CheckGuesses(ctx context.Context, contest, minHits int) ([]model.GuessCheck, error) {
	return m.guesser.CheckGuesses(ctx, contest, minHits)
}

func (m *mockDependencies) SetCommitted(ctx context.Context, id uuid.UUID, committed bool) error {
	return m.guesser.SetCommitted(ctx, id, committed)
}

// Local types for testing
type validateResponse struct {
	Numbers []int  `json:"numbers"`
	Key     string `json:"key"`
}

type frequencyResponse struct {
	Report  model.FrequencyReport `json:"report"`
	Ranking []model.RankedNumber  `json:"ranking"`
}

type comboFrequencyResponse struct {
	Report  model.ComboFrequencyReport `json:"report"`
	Ranking []model.RankedCombo        `json:"ranking"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}
