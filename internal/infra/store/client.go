// Package store is the HTTP client for the external Reservation Store.
// Every non-2xx response and transport failure is normalized to a
// StoreError before leaving this package.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"tablebook/internal/domain/reservation"
	"tablebook/internal/pkg/config"
	"tablebook/internal/pkg/errs"
)

// identityHeader carries the caller identity the upstream gateway vouched
// for; the store uses it for ownership checks on "mine" operations.
const identityHeader = "X-User-ID"

type Client struct {
	base   *url.URL
	http   *http.Client
	logger *slog.Logger
}

func New(cfg config.StoreConfig, logger *slog.Logger) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, errs.Wrap(err, "invalid store base URL")
	}
	return &Client{
		base:   base,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}, nil
}

// reservationWire mirrors the store's JSON record exactly. Date keeps the
// DD/MM/YYYY form and Time the 12-hour form; neither is reinterpreted here.
type reservationWire struct {
	ID              string     `json:"id"`
	TableNumber     string     `json:"tableNumber"`
	Date            string     `json:"date"`
	Time            string     `json:"time"`
	NumberOfPeople  int        `json:"numberOfPeople"`
	SpecialRequests string     `json:"specialRequests,omitempty"`
	Status          string     `json:"status"`
	CreatedAt       *time.Time `json:"createdAt,omitempty"`
	UpdatedAt       *time.Time `json:"updatedAt,omitempty"`
}

type createWire struct {
	TableNumber     string `json:"tableNumber"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	NumberOfPeople  int    `json:"numberOfPeople"`
	SpecialRequests string `json:"specialRequests,omitempty"`
}

type patchWire struct {
	Date            *string `json:"date,omitempty"`
	Time            *string `json:"time,omitempty"`
	NumberOfPeople  *int    `json:"numberOfPeople,omitempty"`
	SpecialRequests *string `json:"specialRequests,omitempty"`
	Status          *string `json:"status,omitempty"`
}

func (c *Client) Create(ctx context.Context, userID string, rec reservation.Reservation) (reservation.Reservation, error) {
	body := createWire{
		TableNumber:     rec.TableNumber,
		Date:            rec.Date,
		Time:            rec.Time,
		NumberOfPeople:  rec.NumberOfPeople,
		SpecialRequests: rec.SpecialRequests,
	}
	var out reservationWire
	if err := c.do(ctx, http.MethodPost, "/reservations", userID, body, &out); err != nil {
		return reservation.Reservation{}, err
	}
	return c.toDomain(out)
}

func (c *Client) List(ctx context.Context) ([]reservation.Reservation, error) {
	var out []reservationWire
	if err := c.do(ctx, http.MethodGet, "/reservations", "", nil, &out); err != nil {
		return nil, err
	}
	return c.toDomainList(out), nil
}

func (c *Client) ListMine(ctx context.Context, userID string) ([]reservation.Reservation, error) {
	var out []reservationWire
	if err := c.do(ctx, http.MethodGet, "/reservations/mine", userID, nil, &out); err != nil {
		return nil, err
	}
	return c.toDomainList(out), nil
}

func (c *Client) Get(ctx context.Context, userID, id string) (reservation.Reservation, error) {
	var out reservationWire
	if err := c.do(ctx, http.MethodGet, "/reservations/"+url.PathEscape(id), userID, nil, &out); err != nil {
		return reservation.Reservation{}, err
	}
	return c.toDomain(out)
}

func (c *Client) Update(ctx context.Context, userID, id string, p reservation.Patch) (reservation.Reservation, error) {
	body := patchWire{
		Date:            p.Date,
		Time:            p.Time,
		NumberOfPeople:  p.NumberOfPeople,
		SpecialRequests: p.SpecialRequests,
	}
	if p.Status != nil {
		s := p.Status.String()
		body.Status = &s
	}
	var out reservationWire
	if err := c.do(ctx, http.MethodPatch, "/reservations/"+url.PathEscape(id), userID, body, &out); err != nil {
		return reservation.Reservation{}, err
	}
	return c.toDomain(out)
}

func (c *Client) UpdateStatus(ctx context.Context, userID, id string, status reservation.Status) (reservation.Reservation, error) {
	body := map[string]string{"status": status.String()}
	var out reservationWire
	if err := c.do(ctx, http.MethodPatch, "/reservations/"+url.PathEscape(id)+"/status", userID, body, &out); err != nil {
		return reservation.Reservation{}, err
	}
	return c.toDomain(out)
}

func (c *Client) Delete(ctx context.Context, userID, id string) error {
	return c.do(ctx, http.MethodDelete, "/reservations/"+url.PathEscape(id), userID, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path, userID string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return newStoreErr(c.logger, KindBadResponse, "encode request", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.JoinPath(path).String(), reqBody)
	if err != nil {
		return newStoreErr(c.logger, KindUnavailable, "build request", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set(identityHeader, userID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return newStoreErr(c.logger, KindUnavailable, "reservation store unreachable", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return newStoreErr(c.logger, KindBadResponse, "read response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return normalizeResponse(c.logger, resp, respBody)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return newStoreErr(c.logger, KindBadResponse, "decode response", err)
	}
	return nil
}

// toDomain converts one wire record, rejecting unknown statuses outright.
func (c *Client) toDomain(w reservationWire) (reservation.Reservation, error) {
	status := reservation.Status(w.Status)
	if !status.IsValid() {
		return reservation.Reservation{}, newStoreErr(c.logger, KindBadResponse, "unknown reservation status "+w.Status, nil)
	}
	return reservation.Reservation{
		ID:              w.ID,
		TableNumber:     w.TableNumber,
		Date:            w.Date,
		Time:            w.Time,
		NumberOfPeople:  w.NumberOfPeople,
		SpecialRequests: w.SpecialRequests,
		Status:          status,
		CreatedAt:       w.CreatedAt,
		UpdatedAt:       w.UpdatedAt,
	}, nil
}

// toDomainList converts a listing. A record with an unknown status is
// dropped with a warning instead of failing the whole snapshot.
func (c *Client) toDomainList(wires []reservationWire) []reservation.Reservation {
	list := make([]reservation.Reservation, 0, len(wires))
	for _, w := range wires {
		rec, err := c.toDomain(w)
		if err != nil {
			c.logger.Warn("dropping malformed reservation record",
				slog.String("id", w.ID), slog.String("status", w.Status))
			continue
		}
		list = append(list, rec)
	}
	return list
}
