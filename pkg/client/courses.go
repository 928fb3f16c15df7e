package client

import (
	"context"
	"net/url"

	"github.com/charmbracelet/log"

	"github.com/utrgv-dp/roadmap/pkg/errors"
	"github.com/utrgv-dp/roadmap/pkg/roadmap"
)

// FetchRoadmap retrieves the roadmap for a course type from
// GET /api/{courseType}. The endpoint returns a sequence of documents
// whose first element is the department record.
func (c *Client) FetchRoadmap(ctx context.Context, courseType string) (*roadmap.Roadmap, error) {
	if courseType == "" {
		return nil, errors.New(errors.ErrCodeInvalidCourseType, "course type is empty")
	}

	var docs []roadmap.Roadmap
	if err := c.getJSON(ctx, "/api/"+url.PathEscape(courseType), &docs); err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, errors.New(errors.ErrCodeNotFound, "no roadmap documents for %q", courseType)
	}
	return &docs[0], nil
}

// FetchListings retrieves the full college/degree catalog from
// GET /api/colleges-degrees. A non-array response is malformed.
func (c *Client) FetchListings(ctx context.Context) ([]roadmap.Listing, error) {
	var listings []roadmap.Listing
	if err := c.getJSON(ctx, "/api/colleges-degrees", &listings); err != nil {
		return nil, err
	}
	return listings, nil
}

// UpdateCourse sends one field edit to PUT /api/update-course. Success is
// a 2xx status with a JSON body; the body content is not consumed beyond
// confirming it decodes. The write is fire-and-forget for UI purposes:
// callers applying the edit optimistically log the returned error instead
// of rolling back.
func (c *Client) UpdateCourse(ctx context.Context, collection, courseTitle, field, value string) error {
	req := roadmap.UpdateRequest{
		CollectionName: collection,
		CourseTitle:    courseTitle,
		Field:          field,
		Value:          value,
	}
	if err := req.Validate(); err != nil {
		return err
	}

	var resp map[string]any
	if err := c.putJSON(ctx, "/api/update-course", req, &resp); err != nil {
		log.FromContext(ctx).Error("course update failed",
			"collection", collection, "title", courseTitle, "field", field, "err", err)
		return err
	}
	return nil
}

// Ensure Client satisfies the editor's persistence contract.
var _ roadmap.Persister = (*Client)(nil)
