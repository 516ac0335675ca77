package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/skillbudget/internal/adapters/http/api"
	service "github.com/okian/skillbudget/internal/app"
	"github.com/okian/skillbudget/internal/domain/model"
	"github.com/okian/skillbudget/internal/domain/report"
	"github.com/okian/skillbudget/internal/domain/types"
	"github.com/okian/skillbudget/internal/ingest"
	"github.com/okian/skillbudget/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

type memSource map[model.SkillType]string

func (m memSource) Fetch(_ context.Context, typ model.SkillType) ([]byte, error) {
	doc, ok := m[typ]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ingest.ErrNoDocument, typ)
	}
	return []byte(doc), nil
}

var docs = memSource{
	model.Yellow: `{"groups": [
		{"aptitude": "", "base": {"value": 50, "skills": ["Alpha"]}, "upgraded": {"value": 90, "skills": ["Alpha Gold"]}},
		{"aptitude": "", "base": {"value": 60, "skills": ["Beta"]}}
	]}`,
	model.Purple: `[{"base": {"name": "Gatekept", "value": 30}}]`,
}

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return m.stats
}

func newMux(ctx context.Context) *http.ServeMux {
	svc := service.New(service.WithSource(docs))
	So(svc.Start(ctx), ShouldBeNil)
	mux := http.NewServeMux()
	api.NewServer(svc, svc).Register(ctx, mux)
	return mux
}

func do(mux *http.ServeMux, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func errorCode(w *httptest.ResponseRecorder) types.ErrorResponse {
	var resp types.ErrorResponse
	So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
	return resp
}

func TestServer_Register(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		ctx := context.Background()
		mux := newMux(ctx)

		Convey("Then health endpoint should summarize ingestion", func() {
			w := do(mux, "GET", "/healthz", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get(api.RequestIDHeader), ShouldNotBeEmpty)
			var h api.Health
			So(json.Unmarshal(w.Body.Bytes(), &h), ShouldBeNil)
			So(h.Status, ShouldEqual, "ok")
			So(h.Categories, ShouldEqual, 6)
			So(h.Skills, ShouldEqual, 4)
			So(h.Failed, ShouldBeEmpty)
		})

		Convey("Then a scraper on healthz gets Prometheus text", func() {
			req := httptest.NewRequest("GET", "/healthz", nil)
			req.Header.Set("Accept", "text/plain")
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldContainSubstring, "text/plain")
		})

		Convey("Then metrics endpoint should be served", func() {
			So(do(mux, "GET", "/metrics", "").Code, ShouldEqual, http.StatusOK)
		})

		Convey("Then a caller's request ID is echoed", func() {
			req := httptest.NewRequest("GET", "/aptitudes", nil)
			req.Header.Set(api.RequestIDHeader, "run-42")
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Header().Get(api.RequestIDHeader), ShouldEqual, "run-42")
		})

		Convey("Then stats endpoint should report the catalog", func() {
			w := do(mux, "GET", "/stats", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			var stats map[string]interface{}
			So(json.Unmarshal(w.Body.Bytes(), &stats), ShouldBeNil)
			So(stats["totalSkills"], ShouldEqual, 4.0)
			So(stats["ingest"], ShouldResemble, map[string]interface{}{"ok": 2.0, "warning": 4.0, "error": 0.0})
		})

		Convey("Then unknown paths are 404", func() {
			So(do(mux, "GET", "/unknown", "").Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("Then wrong methods are rejected", func() {
			So(do(mux, "DELETE", "/skills", "").Code, ShouldEqual, http.StatusMethodNotAllowed)
		})
	})
}

func TestSkillsEndpoints(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		ctx := context.Background()
		mux := newMux(ctx)

		Convey("When listing every skill", func() {
			w := do(mux, "GET", "/skills", "")
			var skills []types.SkillView
			So(json.Unmarshal(w.Body.Bytes(), &skills), ShouldBeNil)

			Convey("Then the catalog comes back in order", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(len(skills), ShouldEqual, 4)
				So(skills[0].Name, ShouldEqual, "Alpha")
				So(skills[3].Rating, ShouldEqual, -30)
			})
		})

		Convey("When filtering by type", func() {
			w := do(mux, "GET", "/skills?type=purple", "")
			var skills []types.SkillView
			So(json.Unmarshal(w.Body.Bytes(), &skills), ShouldBeNil)
			So(len(skills), ShouldEqual, 1)
		})

		Convey("When filtering by an unknown type", func() {
			w := do(mux, "GET", "/skills?type=orange", "")
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(errorCode(w).Code, ShouldEqual, "bad_request")
		})

		Convey("When setting a cost", func() {
			w := do(mux, "PUT", "/skills/1/cost", `{"sp_cost": 20}`)
			var view types.SkillView
			So(json.Unmarshal(w.Body.Bytes(), &view), ShouldBeNil)

			Convey("Then the updated record is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(view.Name, ShouldEqual, "Alpha Gold")
				So(view.SPCost, ShouldEqual, 20)
			})
		})

		Convey("When the cost is negative", func() {
			w := do(mux, "PUT", "/skills/1/cost", `{"sp_cost": -5}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(errorCode(w).Code, ShouldEqual, "invalid_cost")
		})

		Convey("When the cost is missing", func() {
			w := do(mux, "PUT", "/skills/1/cost", `{}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the index is bad", func() {
			So(do(mux, "PUT", "/skills/x/cost", `{"sp_cost": 1}`).Code, ShouldEqual, http.StatusBadRequest)
			So(do(mux, "PUT", "/skills/99/cost", `{"sp_cost": 1}`).Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("When costing a penalty record", func() {
			w := do(mux, "PUT", "/skills/3/cost", `{"sp_cost": 10}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(errorCode(w).Code, ShouldEqual, "not_purchasable")
		})

		Convey("When setting a cost by a misspelled name", func() {
			w := do(mux, "PUT", "/skills/cost", `{"name": "Bets", "sp_cost": 10}`)

			Convey("Then the response suggests close names", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
				resp := errorCode(w)
				So(resp.Code, ShouldEqual, "not_found")
				So(resp.Suggestions, ShouldContain, "Beta")
			})
		})

		Convey("When setting a cost by name and variant", func() {
			w := do(mux, "PUT", "/skills/cost", `{"name": "alpha gold", "variant": "upgraded", "sp_cost": 10}`)
			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("When toggling the penalty record", func() {
			w := do(mux, "PUT", "/skills/3/enabled", `{"enabled": true}`)
			var view types.SkillView
			So(json.Unmarshal(w.Body.Bytes(), &view), ShouldBeNil)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(view.Enabled, ShouldBeTrue)
		})

		Convey("When toggling a regular record", func() {
			w := do(mux, "PUT", "/skills/0/enabled", `{"enabled": true}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(errorCode(w).Code, ShouldEqual, "not_penalty")
		})
	})
}

func TestAptitudesEndpoints(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		ctx := context.Background()
		mux := newMux(ctx)

		Convey("When changing a grade", func() {
			w := do(mux, "PUT", "/aptitudes", `{"aptitude": "Pace_Chaser", "grade": "g"}`)
			var rows []types.AptitudeGrade
			So(json.Unmarshal(w.Body.Bytes(), &rows), ShouldBeNil)

			Convey("Then the new assignment is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				found := false
				for _, r := range rows {
					if r.Aptitude == "Pace Chaser" {
						found = true
						So(string(r.Grade), ShouldEqual, "G")
					}
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When the grade is unknown", func() {
			w := do(mux, "PUT", "/aptitudes", `{"aptitude": "Mile", "grade": "Z"}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(errorCode(w).Code, ShouldEqual, "invalid_grade")
		})

		Convey("When reading the assignment", func() {
			w := do(mux, "GET", "/aptitudes", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"grade":"S-A"`)
		})
	})
}

func TestOptimizeEndpoint(t *testing.T) {
	Convey("Given costed skills", t, func() {
		ctx := context.Background()
		mux := newMux(ctx)
		So(do(mux, "PUT", "/skills/0/cost", `{"sp_cost": 10}`).Code, ShouldEqual, http.StatusOK)
		So(do(mux, "PUT", "/skills/1/cost", `{"sp_cost": 20}`).Code, ShouldEqual, http.StatusOK)
		So(do(mux, "PUT", "/skills/2/cost", `{"sp_cost": 15}`).Code, ShouldEqual, http.StatusOK)

		Convey("When optimizing with budget 25", func() {
			w := do(mux, "POST", "/optimize", `{"budget": 25}`)
			var rep report.Report
			So(json.Unmarshal(w.Body.Bytes(), &rep), ShouldBeNil)

			Convey("Then the report holds the best purchase set", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(rep.TotalRating, ShouldEqual, 110)
				So(rep.UsedCost, ShouldEqual, 25)
				So(rep.RunID, ShouldNotBeEmpty)
			})
		})

		Convey("When the budget is 0", func() {
			w := do(mux, "POST", "/optimize", `{"budget": 0}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(errorCode(w).Code, ShouldEqual, "invalid_budget")
		})

		Convey("When the budget is missing", func() {
			w := do(mux, "POST", "/optimize", `{}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(errorCode(w).Code, ShouldEqual, "bad_request")
		})

		Convey("When the body is not JSON", func() {
			So(do(mux, "POST", "/optimize", `budget=25`).Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When everything is reset first", func() {
			So(do(mux, "POST", "/reset", "").Code, ShouldEqual, http.StatusOK)
			w := do(mux, "POST", "/optimize", `{"budget": 25}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(errorCode(w).Code, ShouldEqual, "no_candidates")
		})
	})
}

func TestSessionEndpoints(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		ctx := context.Background()
		mux := newMux(ctx)

		Convey("When resetting with each scope", func() {
			So(do(mux, "POST", "/reset?scope=skills", "").Code, ShouldEqual, http.StatusOK)
			So(do(mux, "POST", "/reset?scope=all", "").Code, ShouldEqual, http.StatusOK)
			So(do(mux, "POST", "/reset?scope=all", "").Code, ShouldEqual, http.StatusOK)
		})

		Convey("When the scope is unknown", func() {
			So(do(mux, "POST", "/reset?scope=grades", "").Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When reading the ingestion outcomes", func() {
			w := do(mux, "GET", "/ingest", "")
			var outcomes []ingest.Outcome
			So(json.Unmarshal(w.Body.Bytes(), &outcomes), ShouldBeNil)

			Convey("Then each category is listed", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(len(outcomes), ShouldEqual, len(model.SkillTypes()))
				So(outcomes[0].Status, ShouldEqual, ingest.StatusOK)
				So(outcomes[1].Status, ShouldEqual, ingest.StatusWarning)
			})
		})
	})

	Convey("Given a service that was never started", t, func() {
		ctx := context.Background()
		svc := service.New()
		mux := http.NewServeMux()
		api.NewServer(svc, &mockStatsProvider{stats: map[string]interface{}{"started": false}}).Register(ctx, mux)

		Convey("Then catalog routes report not ready", func() {
			w := do(mux, "GET", "/skills", "")
			So(w.Code, ShouldEqual, http.StatusServiceUnavailable)
			So(errorCode(w).Code, ShouldEqual, "not_ready")
		})
	})
}

func TestError(t *testing.T) {
	Convey("Given API errors", t, func() {
		cause := errors.New("boom")

		Convey("Then kinds and causes are both matchable", func() {
			err := api.WrapKind("api.op", api.ErrBadRequest, cause)
			So(err.Error(), ShouldEqual, "api.op: bad request: boom")
			So(errors.Is(err, api.ErrBadRequest), ShouldBeTrue)
			So(errors.Is(err, cause), ShouldBeTrue)
		})

		Convey("Then Wrap of nil is nil", func() {
			So(api.Wrap("api.op", nil), ShouldBeNil)
		})
	})
}
