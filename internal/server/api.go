package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/utrgv-dp/roadmap/pkg/cache"
	"github.com/utrgv-dp/roadmap/pkg/errors"
	"github.com/utrgv-dp/roadmap/pkg/roadmap"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor maps error codes to HTTP statuses.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeNotFound, errors.ErrCodeCourseNotFound, errors.ErrCodeCollectionNotFound:
		return http.StatusNotFound
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidField,
		errors.ErrCodeInvalidCourseType, errors.ErrCodeInvalidRoadmap:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	logger := log.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "path", r.URL.Path, "err", err)
	} else {
		logger.Debug("request rejected", "path", r.URL.Path, "err", err)
	}
	respondJSON(w, status, map[string]string{"error": errors.UserMessage(err)})
}

// cachedJSON reads a value through the cache: on a hit the raw bytes are
// decoded, on a miss load runs and its encoding is stored for next time.
// Cache failures degrade to direct loads.
func cachedJSON[T any](ctx context.Context, s *Server, key string, load func(context.Context) (T, error)) (T, error) {
	var zero T
	if s.cache == nil {
		return load(ctx)
	}

	if data, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		var v T
		if err := json.Unmarshal(data, &v); err == nil {
			return v, nil
		}
		// A corrupt entry falls through to a fresh load.
		_ = s.cache.Delete(ctx, key)
	} else if err != nil {
		log.FromContext(ctx).Warn("cache read failed", "key", key, "err", err)
	}

	v, err := load(ctx)
	if err != nil {
		return zero, err
	}
	if data, err := json.Marshal(v); err == nil {
		if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
			log.FromContext(ctx).Warn("cache write failed", "key", key, "err", err)
		}
	}
	return v, nil
}

func (s *Server) listings(ctx context.Context) ([]roadmap.Listing, error) {
	return cachedJSON(ctx, s, cache.ListingsKey, s.store.Listings)
}

func (s *Server) roadmaps(ctx context.Context, collection string) ([]roadmap.Roadmap, error) {
	return cachedJSON(ctx, s, cache.RoadmapKey(collection),
		func(ctx context.Context) ([]roadmap.Roadmap, error) {
			return s.store.Roadmaps(ctx, collection)
		})
}

// handleListings serves the college/degree catalog.
func (s *Server) handleListings(w http.ResponseWriter, r *http.Request) {
	listings, err := s.listings(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if listings == nil {
		listings = []roadmap.Listing{}
	}
	respondJSON(w, http.StatusOK, listings)
}

// handleRoadmaps serves all documents of a course type's collection.
func (s *Server) handleRoadmaps(w http.ResponseWriter, r *http.Request) {
	collection, err := roadmap.CollectionName(chi.URLParam(r, "courseType"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	docs, err := s.roadmaps(r.Context(), collection)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if docs == nil {
		docs = []roadmap.Roadmap{}
	}
	respondJSON(w, http.StatusOK, docs)
}

// handleUpdateCourse applies a single-field course edit.
func (s *Server) handleUpdateCourse(w http.ResponseWriter, r *http.Request) {
	var req roadmap.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decoding update request"))
		return
	}
	if err := req.Validate(); err != nil {
		s.respondError(w, r, err)
		return
	}

	if err := s.store.UpdateCourse(r.Context(), req.CollectionName, req.CourseTitle, req.Field, req.Value); err != nil {
		s.respondError(w, r, err)
		return
	}

	// The collection changed; drop its cached projection.
	if s.cache != nil {
		if err := s.cache.Delete(r.Context(), cache.RoadmapKey(req.CollectionName)); err != nil {
			log.FromContext(r.Context()).Warn("cache invalidation failed",
				"collection", req.CollectionName, "err", err)
		}
	}

	log.FromContext(r.Context()).Info("course updated",
		"collection", req.CollectionName,
		"course", req.CourseTitle,
		"field", req.Field)
	respondJSON(w, http.StatusOK, map[string]string{"message": "Update successful"})
}

// handleHealth reports liveness, including store reachability.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
