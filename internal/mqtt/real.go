package mqtt

import (
	"fmt"
	"log"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/sweeney/led-arbiter/internal/logic"
)

// DefaultBufferSize is how many messages are held while the broker is unreachable.
const DefaultBufferSize = 256

// RealPublisher publishes to an actual MQTT broker.
// Publishing never waits on the network: messages are handed to paho and
// delivery errors are logged, and while disconnected they are buffered and
// replayed on reconnect.
type RealPublisher struct {
	client paho.Client

	mu  sync.Mutex
	buf *ringBuffer
}

// NewRealPublisher creates a publisher for the given broker. The connection
// is retried in the background; an unreachable broker is not an error.
func NewRealPublisher(broker, clientID string, bufferSize int) *RealPublisher {
	p := &RealPublisher{buf: newRingBuffer(bufferSize)}

	will, _ := FormatSystemPayload(SystemEvent{Timestamp: time.Now(), Event: "OFFLINE", Reason: "LWT"})

	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5*time.Second).
		SetBinaryWill(TopicSystem, will, 1, true).
		SetOnConnectHandler(func(paho.Client) {
			log.Printf("mqtt: connected to %s", broker)
			p.flush()
		}).
		SetConnectionLostHandler(func(_ paho.Client, err error) {
			log.Printf("mqtt: connection lost: %v", err)
		})

	p.client = paho.NewClient(opts)
	token := p.client.Connect()
	if !token.WaitTimeout(5 * time.Second) {
		log.Printf("mqtt: broker %s not reachable yet, buffering", broker)
	} else if err := token.Error(); err != nil {
		log.Printf("mqtt: connect to %s: %v", broker, err)
	}

	return p
}

// Publish sends an arbitration event (QoS 0, not retained).
func (p *RealPublisher) Publish(event logic.Event) error {
	payload, err := FormatPayload(event)
	if err != nil {
		return fmt.Errorf("format payload: %w", err)
	}
	return p.publish(bufferedMsg{topic: Topic, payload: payload})
}

// PublishSystem sends a system lifecycle event (QoS 1).
func (p *RealPublisher) PublishSystem(event SystemEvent) error {
	payload, err := FormatSystemPayload(event)
	if err != nil {
		return fmt.Errorf("format system payload: %w", err)
	}
	return p.publish(bufferedMsg{topic: TopicSystem, payload: payload, qos: 1, retained: event.Retained})
}

func (p *RealPublisher) publish(msg bufferedMsg) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.client.IsConnectionOpen() {
		p.buf.push(msg)
		return nil
	}
	return p.send(msg)
}

// send must be called with p.mu held.
func (p *RealPublisher) send(msg bufferedMsg) error {
	token := p.client.Publish(msg.topic, msg.qos, msg.retained, msg.payload)
	select {
	case <-token.Done():
		if err := token.Error(); err != nil {
			return fmt.Errorf("publish %s: %w", msg.topic, err)
		}
	default:
		go func() {
			if !token.WaitTimeout(10 * time.Second) {
				log.Printf("mqtt: publish %s timed out", msg.topic)
				return
			}
			if err := token.Error(); err != nil {
				log.Printf("mqtt: publish %s: %v", msg.topic, err)
			}
		}()
	}
	return nil
}

func (p *RealPublisher) flush() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, msg := range p.buf.drainAll() {
		if err := p.send(msg); err != nil {
			log.Printf("mqtt: replay: %v", err)
		}
	}
}

// IsConnected reports whether the broker connection is up.
func (p *RealPublisher) IsConnected() bool {
	return p.client.IsConnectionOpen()
}

// Close disconnects from the broker.
func (p *RealPublisher) Close() error {
	p.client.Disconnect(1000) // 1 second timeout
	return nil
}

// NopPublisher drops everything. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(logic.Event) error       { return nil }
func (NopPublisher) PublishSystem(SystemEvent) error { return nil }
func (NopPublisher) Close() error                    { return nil }
func (NopPublisher) IsConnected() bool               { return false }
