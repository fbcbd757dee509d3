package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"dashboard/domain"

	natsserver "github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
)

// startTestNATS starts an embedded NATS server and returns its client URL.
func startTestNATS(t *testing.T) string {
	t.Helper()
	opts := &natsserver.Options{Host: "127.0.0.1", Port: -1}
	srv, err := natsserver.NewServer(opts)
	if err != nil {
		t.Fatalf("starting embedded NATS: %v", err)
	}
	srv.Start()
	t.Cleanup(srv.Shutdown)
	if !srv.ReadyForConnections(5 * time.Second) {
		t.Fatal("embedded NATS not ready")
	}
	return srv.ClientURL()
}

func TestNATSPublisherDeliversUpsert(t *testing.T) {
	url := startTestNATS(t)

	sub, err := nats.Connect(url)
	if err != nil {
		t.Fatalf("connecting subscriber: %v", err)
	}
	defer sub.Close()
	ch := make(chan *nats.Msg, 1)
	if _, err := sub.ChanSubscribe("dashboard.>", ch); err != nil {
		t.Fatalf("subscribing: %v", err)
	}
	if err := sub.Flush(); err != nil {
		t.Fatal(err)
	}

	pub, err := NewNATSPublisher(url)
	if err != nil {
		t.Fatalf("creating publisher: %v", err)
	}
	defer pub.Close()

	ev := ComponentUpserted{Component: domain.Component{ID: "1", Type: "footer", Data: json.RawMessage(`{"email":"a@b.com"}`)}}
	if err := pub.Publish(context.Background(), TopicComponentUpserted, ev); err != nil {
		t.Fatalf("publishing: %v", err)
	}
	if err := pub.conn.Flush(); err != nil {
		t.Fatal(err)
	}

	select {
	case msg := <-ch:
		if msg.Subject != TopicComponentUpserted {
			t.Errorf("subject = %q", msg.Subject)
		}
		var got ComponentUpserted
		if err := json.Unmarshal(msg.Data, &got); err != nil {
			t.Fatal(err)
		}
		if got.Component.Type != "footer" || string(got.Component.Data) != `{"email":"a@b.com"}` {
			t.Errorf("got %+v", got.Component)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestNATSPublisherConnectFailure(t *testing.T) {
	if _, err := NewNATSPublisher("nats://127.0.0.1:1", nats.MaxReconnects(0), nats.Timeout(200*time.Millisecond)); err == nil {
		t.Fatal("expected connection error")
	}
}

func TestNoopPublisher(t *testing.T) {
	var p Publisher = NoopPublisher{}
	if err := p.Publish(context.Background(), TopicComponentUpserted, nil); err != nil {
		t.Fatal(err)
	}
}
