package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/m-mizutani/goerr/v2"

	"github.com/swasthya-lab/swasthya/pkg/domain/model"
	"github.com/swasthya-lab/swasthya/pkg/domain/types"
	"github.com/swasthya-lab/swasthya/pkg/utils/errutil"
	"github.com/swasthya-lab/swasthya/pkg/utils/safe"
)

func respondJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		errutil.Handle(r.Context(), err, "failed to encode response")
	}
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]string{
		"message": "Swasthya backend is running",
		"status":  "OK",
	})
}

// readUpload pulls the multipart "file" part and its filename
func readUpload(r *http.Request) (string, []byte, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxUploadSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		return "", nil, goerr.Wrap(err, "file field is required",
			goerr.T(types.TagValidationFailure))
	}
	defer safe.Close(r.Context(), file)

	data, err := io.ReadAll(file)
	if err != nil {
		return "", nil, goerr.Wrap(err, "failed to read uploaded file",
			goerr.T(types.TagValidationFailure))
	}

	return header.Filename, data, nil
}

type uploadResponse struct {
	Status          string `json:"status"`
	RecordID        string `json:"record_id"`
	Modality        string `json:"modality"`
	CharactersSaved int    `json:"characters_saved"`
}

func (s *Server) uploadDocument(w http.ResponseWriter, r *http.Request, kind types.RecordKind, statusMsg string) {
	filename, data, err := readUpload(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, errutil.StatusCode(err))
		return
	}

	result, err := s.uc.Ingest.UploadDocument(r.Context(), kind, filename, data)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, errutil.StatusCode(err))
		return
	}

	respondJSON(w, r, http.StatusOK, uploadResponse{
		Status:          statusMsg,
		RecordID:        string(result.RecordID),
		Modality:        result.Modality.String(),
		CharactersSaved: result.CharactersSaved,
	})
}

func (s *Server) uploadPrescriptionHandler(w http.ResponseWriter, r *http.Request) {
	s.uploadDocument(w, r, types.RecordKindPrescription, "Prescription stored successfully")
}

func (s *Server) uploadReportHandler(w http.ResponseWriter, r *http.Request) {
	s.uploadDocument(w, r, types.RecordKindReport, "Report stored successfully")
}

type vitalsRequest struct {
	Weight        *float64 `json:"weight"`
	Height        *float64 `json:"height"`
	BloodPressure string   `json:"blood_pressure"`
}

type vitalsResponse struct {
	Status  string   `json:"status"`
	Date    string   `json:"date"`
	Metrics []string `json:"metrics"`
}

func (s *Server) addVitalsHandler(w http.ResponseWriter, r *http.Request) {
	var req vitalsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		wrapped := goerr.Wrap(err, "invalid request body", goerr.T(types.TagValidationFailure))
		errutil.HandleHTTP(r.Context(), w, wrapped, http.StatusBadRequest)
		return
	}

	result, err := s.uc.Vitals.Add(r.Context(), model.VitalsInput{
		Weight:        req.Weight,
		Height:        req.Height,
		BloodPressure: req.BloodPressure,
	})
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, errutil.StatusCode(err))
		return
	}

	metrics := make([]string, len(result.Metrics))
	for i, m := range result.Metrics {
		metrics[i] = m.String()
	}

	respondJSON(w, r, http.StatusOK, vitalsResponse{
		Status:  "Vitals stored as time-aware memory",
		Date:    result.Date,
		Metrics: metrics,
	})
}

type vaccinationRequest struct {
	ChildName   string `json:"child_name"`
	DateOfBirth string `json:"dob"`
	Vaccine     string `json:"vaccine"`
	Date        string `json:"date"`
}

type vaccinationResponse struct {
	Status    string `json:"status"`
	RecordID  string `json:"record_id"`
	AgeMonths int    `json:"age_months"`
}

func (s *Server) addVaccinationHandler(w http.ResponseWriter, r *http.Request) {
	var req vaccinationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		wrapped := goerr.Wrap(err, "invalid request body", goerr.T(types.TagValidationFailure))
		errutil.HandleHTTP(r.Context(), w, wrapped, http.StatusBadRequest)
		return
	}

	result, err := s.uc.Vaccination.Add(r.Context(), req.ChildName, req.Vaccine, req.DateOfBirth, req.Date)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, errutil.StatusCode(err))
		return
	}

	respondJSON(w, r, http.StatusOK, vaccinationResponse{
		Status:    "Vaccination stored successfully",
		RecordID:  string(result.RecordID),
		AgeMonths: result.AgeMonths,
	})
}

type askRequest struct {
	Question string `json:"question"`
}

type retrievedRecord struct {
	Type     string  `json:"type"`
	Modality string  `json:"modality,omitempty"`
	Content  string  `json:"content"`
	Score    float64 `json:"score"`
}

type askResponse struct {
	Question         string            `json:"question"`
	Answer           string            `json:"answer,omitempty"`
	RetrievedRecords []retrievedRecord `json:"retrieved_records,omitempty"`
}

func (s *Server) askHandler(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		wrapped := goerr.Wrap(err, "invalid request body", goerr.T(types.TagValidationFailure))
		errutil.HandleHTTP(r.Context(), w, wrapped, http.StatusBadRequest)
		return
	}

	result, err := s.uc.Recall.Ask(r.Context(), req.Question)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, errutil.StatusCode(err))
		return
	}

	resp := askResponse{
		Question: result.Question,
		Answer:   result.Answer,
	}
	for _, hit := range result.Records {
		resp.RetrievedRecords = append(resp.RetrievedRecords, retrievedRecord{
			Type:     hit.Kind.String(),
			Modality: hit.Modality.String(),
			Content:  hit.Content,
			Score:    hit.Score,
		})
	}

	respondJSON(w, r, http.StatusOK, resp)
}

type weightSample struct {
	Date   string `json:"date"`
	Record string `json:"record"`
}

type weightTrendResponse struct {
	Metric  string         `json:"metric,omitempty"`
	Message string         `json:"message,omitempty"`
	History []weightSample `json:"history,omitempty"`
	Insight string         `json:"insight,omitempty"`
}

func (s *Server) weightTrendHandler(w http.ResponseWriter, r *http.Request) {
	result, err := s.uc.Trend.Weight(r.Context())
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, errutil.StatusCode(err))
		return
	}

	resp := weightTrendResponse{Message: result.Message}
	if result.Message == "" {
		resp.Metric = result.Metric.String()
		resp.Insight = result.Insight
		for _, sample := range result.History {
			resp.History = append(resp.History, weightSample{
				Date:   sample.Date,
				Record: sample.Record,
			})
		}
	}

	respondJSON(w, r, http.StatusOK, resp)
}

type listedRecord struct {
	ID             string `json:"id"`
	Type           string `json:"type"`
	Modality       string `json:"modality,omitempty"`
	ContentPreview string `json:"content_preview"`
}

type memoryAllResponse struct {
	TotalRecords int            `json:"total_records"`
	Records      []listedRecord `json:"records"`
}

func (s *Server) memoryAllHandler(w http.ResponseWriter, r *http.Request) {
	result, err := s.uc.Listing.All(r.Context())
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, errutil.StatusCode(err))
		return
	}

	resp := memoryAllResponse{
		TotalRecords: result.TotalRecords,
		Records:      make([]listedRecord, len(result.Records)),
	}
	for i, rec := range result.Records {
		resp.Records[i] = listedRecord{
			ID:             string(rec.ID),
			Type:           rec.Kind.String(),
			Modality:       rec.Modality.String(),
			ContentPreview: rec.ContentPreview,
		}
	}

	respondJSON(w, r, http.StatusOK, resp)
}
