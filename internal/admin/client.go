package admin

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Client calls the admin service.
type Client struct {
	conn  *grpc.ClientConn
	token string
}

// Dial connects to the admin service at addr without transport security;
// the listener binds to loopback by default.
func Dial(addr string) (*Client, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("dialing admin at %s: %w", addr, err)
	}
	return &Client{conn: conn}, nil
}

// Close releases the connection.
func (c *Client) Close() error { return c.conn.Close() }

// SetToken sets the bearer token sent with every later call.
func (c *Client) SetToken(token string) { c.token = token }

func (c *Client) invoke(ctx context.Context, method string, in, out any) error {
	if c.token != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+c.token)
	}
	return c.conn.Invoke(ctx, "/"+ServiceName+"/"+method, in, out)
}

// Login exchanges a name and password for a token and keeps it.
func (c *Client) Login(ctx context.Context, name, password string) (string, error) {
	req, err := structpb.NewStruct(map[string]any{"name": name, "password": password})
	if err != nil {
		return "", err
	}
	out := &wrapperspb.StringValue{}
	if err := c.invoke(ctx, "Login", req, out); err != nil {
		return "", err
	}
	c.token = out.GetValue()
	return c.token, nil
}

// Status returns the game counters.
func (c *Client) Status(ctx context.Context) (map[string]any, error) {
	out := &structpb.Struct{}
	if err := c.invoke(ctx, "Status", &emptypb.Empty{}, out); err != nil {
		return nil, err
	}
	return out.AsMap(), nil
}

// Who returns one map per connection.
func (c *Client) Who(ctx context.Context) ([]map[string]any, error) {
	out := &structpb.ListValue{}
	if err := c.invoke(ctx, "Who", &emptypb.Empty{}, out); err != nil {
		return nil, err
	}
	var sessions []map[string]any
	for _, v := range out.GetValues() {
		sessions = append(sessions, v.GetStructValue().AsMap())
	}
	return sessions, nil
}

// Broadcast sends msg to every player.
func (c *Client) Broadcast(ctx context.Context, msg string) error {
	return c.invoke(ctx, "Broadcast", wrapperspb.String(msg), &emptypb.Empty{})
}

// Shutdown stops the game.
func (c *Client) Shutdown(ctx context.Context, reason string) error {
	return c.invoke(ctx, "Shutdown", wrapperspb.String(reason), &emptypb.Empty{})
}
