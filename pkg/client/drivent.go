package client

import (
	"context"
	"net/url"
)

// DriventClient talks to the booking, hotel and ticket endpoints on behalf of one user.
type DriventClient struct {
	httpClient *HttpClient
}

func NewDriventClient(baseURL, token string) *DriventClient {
	return &DriventClient{
		httpClient: NewHttpClient(baseURL).WithToken(token),
	}
}

// WithIdempotencyKey returns a copy whose requests carry the Idempotency-Key header.
func (c *DriventClient) WithIdempotencyKey(key string) *DriventClient {
	return &DriventClient{httpClient: c.httpClient.WithHeader("Idempotency-Key", key)}
}

func (c *DriventClient) GetBooking(ctx context.Context) (*Response, error) {
	return c.httpClient.GET(ctx, "/booking")
}

func (c *DriventClient) CreateBooking(ctx context.Context, roomID string) (*Response, error) {
	return c.httpClient.POST(ctx, "/booking", map[string]string{"roomId": roomID})
}

func (c *DriventClient) UpdateBooking(ctx context.Context, bookingID, roomID string) (*Response, error) {
	return c.httpClient.PUT(ctx, "/booking/"+url.PathEscape(bookingID), map[string]string{"roomId": roomID})
}

func (c *DriventClient) ListHotels(ctx context.Context) (*Response, error) {
	return c.httpClient.GET(ctx, "/hotels")
}

func (c *DriventClient) GetHotel(ctx context.Context, hotelID string) (*Response, error) {
	return c.httpClient.GET(ctx, "/hotels/"+url.PathEscape(hotelID))
}

func (c *DriventClient) ListTicketTypes(ctx context.Context) (*Response, error) {
	return c.httpClient.GET(ctx, "/tickets/types")
}

func (c *DriventClient) GetTicket(ctx context.Context) (*Response, error) {
	return c.httpClient.GET(ctx, "/tickets")
}

func (c *DriventClient) ReserveTicket(ctx context.Context, ticketTypeID string) (*Response, error) {
	return c.httpClient.POST(ctx, "/tickets", map[string]string{"ticketTypeId": ticketTypeID})
}
