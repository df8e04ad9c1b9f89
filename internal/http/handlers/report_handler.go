// Report HTTP handlers.
//
//   - GET /reports/daily/{profile_id}?date=YYYY-MM-DD
//   - GET /reports/weekly/{profile_id}
//   - GET /reports/weekly/{profile_id}/narrative
//   - GET /reports/monthly/{profile_id}?year=&month=
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/kids-talk-backend/internal/services"
	"github.com/tbourn/kids-talk-backend/internal/utils"
)

// WeeklyNarrativeResponse is the cached weekly narrative.
type WeeklyNarrativeResponse struct {
	ProfileID int64  `json:"profile_id" example:"42"`
	StartDate string `json:"start_date" example:"2025-07-07"`
	EndDate   string `json:"end_date" example:"2025-07-13"`
	Content   string `json:"content" example:"이번 주에는 공룡 이야기를 가장 즐겁게 했어요."`
}

// profileParam parses the profile_id path parameter, failing the request
// when it is not a positive integer.
func profileParam(c *gin.Context) (int64, bool) {
	id, err := utils.ParseID(c.Param("profile_id"))
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "profile_id must be a positive integer")
		return 0, false
	}
	return id, true
}

// readFailed maps a read-side error: ErrNoRecords is 404, anything else 500
// with code.
func readFailed(c *gin.Context, err error, code string) {
	if errors.Is(err, services.ErrNoRecords) {
		fail(c, http.StatusNotFound, ErrCodeNotFound, err.Error())
		return
	}
	fail(c, http.StatusInternalServerError, code, err.Error())
}

// DailyReport godoc
// @ID          dailyReport
// @Summary     Daily sentiment report
// @Description Positive and negative keywords and shares of one day (today when date is omitted).
// @Tags        Reports
// @Produce     json
// @Param       profile_id  path   int     true   "Profile ID"  minimum(1)
// @Param       date        query  string  false  "Day (YYYY-MM-DD)"  example(2025-07-07)
// @Success     200  {object}  services.DailyReport
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /reports/daily/{profile_id} [get]
func (h *Handlers) DailyReport(c *gin.Context) {
	pid, okID := profileParam(c)
	if !okID {
		return
	}
	date, err := utils.ParseDate(c.Query("date"), h.d.Location)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "date must be YYYY-MM-DD")
		return
	}
	rep, err := h.d.Reports.Daily(c.Request.Context(), pid, date)
	if err != nil {
		readFailed(c, err, ErrCodeReportFailed)
		return
	}
	ok(c, http.StatusOK, rep)
}

// WeeklyReport godoc
// @ID          weeklyReport
// @Summary     Weekly sentiment aggregates
// @Description Top keywords, weekday shares and time-of-day counts of the previous Monday-to-Sunday week.
// @Tags        Reports
// @Produce     json
// @Param       profile_id  path  int  true  "Profile ID"  minimum(1)
// @Success     200  {object}  services.WeeklySummary
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "No records last week"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /reports/weekly/{profile_id} [get]
func (h *Handlers) WeeklyReport(c *gin.Context) {
	pid, okID := profileParam(c)
	if !okID {
		return
	}
	sum, err := h.d.Reports.Weekly(c.Request.Context(), pid)
	if err != nil {
		readFailed(c, err, ErrCodeReportFailed)
		return
	}
	ok(c, http.StatusOK, sum)
}

// WeeklyNarrative godoc
// @ID          weeklyNarrative
// @Summary     Weekly narrative
// @Description Returns the cached narrative of the previous week, generating and caching it on first request.
// @Tags        Reports
// @Produce     json
// @Param       profile_id  path  int  true  "Profile ID"  minimum(1)
// @Success     200  {object}  handlers.WeeklyNarrativeResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "No records last week"
// @Failure     503  {object}  handlers.ErrorResponse  "Model unavailable"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /reports/weekly/{profile_id}/narrative [get]
func (h *Handlers) WeeklyNarrative(c *gin.Context) {
	pid, okID := profileParam(c)
	if !okID {
		return
	}
	rep, err := h.d.Reports.WeeklyReport(c.Request.Context(), pid)
	if errors.Is(err, services.ErrGeneration) {
		fail(c, http.StatusServiceUnavailable, ErrCodeGenerationFailed, "weekly narrative could not be generated")
		return
	}
	if err != nil {
		readFailed(c, err, ErrCodeReportFailed)
		return
	}
	ok(c, http.StatusOK, WeeklyNarrativeResponse{
		ProfileID: rep.ProfileID,
		StartDate: rep.StartDate.In(h.d.Location).Format(utils.DateLayout),
		EndDate:   rep.EndDate.In(h.d.Location).Format(utils.DateLayout),
		Content:   rep.Content,
	})
}

// MonthlyReport godoc
// @ID          monthlyReport
// @Summary     Monthly sentiment calendar
// @Description Classifies every day of a month as positive, negative, neutral or none. Defaults to the current month.
// @Tags        Reports
// @Produce     json
// @Param       profile_id  path   int  true   "Profile ID"  minimum(1)
// @Param       year        query  int  false  "Year"   example(2025)
// @Param       month       query  int  false  "Month"  minimum(1) maximum(12) example(7)
// @Success     200  {object}  services.MonthlyReport
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /reports/monthly/{profile_id} [get]
func (h *Handlers) MonthlyReport(c *gin.Context) {
	pid, okID := profileParam(c)
	if !okID {
		return
	}
	now := h.d.Now().In(h.d.Location)
	year := utils.AtoiDefault(c.Query("year"), now.Year())
	month := utils.AtoiDefault(c.Query("month"), int(now.Month()))

	rep, err := h.d.Reports.Monthly(c.Request.Context(), pid, year, month)
	if errors.Is(err, services.ErrInvalidMonth) {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}
	if err != nil {
		readFailed(c, err, ErrCodeReportFailed)
		return
	}
	ok(c, http.StatusOK, rep)
}
