// Package mqtt publishes planning results to an MQTT broker so barn
// displays and other subscribers can pick up the day's rosters. The core
// never depends on this package.
package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/kennelops/kennelplan/core/model"
	"github.com/kennelops/kennelplan/infra/logger"
)

// Config defines the connection parameters for the Paho MQTT publisher.
type Config struct {
	Enabled   bool   `json:"enabled"`
	Broker    string `json:"broker"`
	ClientID  string `json:"client_id"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	TopicBase string `json:"topic_base"`
	QoS       byte   `json:"qos"`
	TimeoutMS int    `json:"timeout_ms"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.ClientID == "" {
		c.ClientID = "kennelplan"
	}
	if c.TopicBase == "" {
		c.TopicBase = "kennel/plans"
	}
	if c.TimeoutMS <= 0 {
		c.TimeoutMS = 5000
	}
}

// Publisher sends batch results to interested subscribers.
type Publisher interface {
	PublishBatch(res model.BatchResult) error
	Close()
}

type pahoClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// PahoPublisher implements Publisher using Eclipse Paho.
type PahoPublisher struct {
	cli     pahoClient
	cfg     Config
	timeout time.Duration
	log     logger.Logger
}

// NewPahoPublisher connects to the broker and returns a ready publisher.
func NewPahoPublisher(cfg Config) (*PahoPublisher, error) {
	cfg.SetDefaults()
	opts := paho.NewClientOptions().AddBroker(cfg.Broker).SetClientID(cfg.ClientID)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	opts.SetAutoReconnect(true)

	log := logger.New("mqtt-publisher")
	opts.OnConnect = func(paho.Client) { log.Infof("MQTT connected to %s", cfg.Broker) }
	opts.OnConnectionLost = func(_ paho.Client, err error) { log.Warnf("MQTT connection lost: %v", err) }

	cli := newMQTTClient(opts)
	timeout := time.Duration(cfg.TimeoutMS) * time.Millisecond
	token := cli.Connect()
	if !token.WaitTimeout(timeout) {
		return nil, fmt.Errorf("mqtt connect timeout after %s", timeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect: %w", err)
	}
	return &PahoPublisher{cli: cli, cfg: cfg, timeout: timeout, log: log}, nil
}

// PublishBatch publishes the batch result as JSON on
// <topic_base>/<run_id>.
func (p *PahoPublisher) PublishBatch(res model.BatchResult) error {
	payload, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("marshal batch: %w", err)
	}
	topic := fmt.Sprintf("%s/%s", p.cfg.TopicBase, res.RunID)
	token := p.cli.Publish(topic, p.cfg.QoS, false, payload)
	if !token.WaitTimeout(p.timeout) {
		return fmt.Errorf("publish timeout on %s", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	p.log.Debugw("batch published", map[string]any{"topic": topic, "teams": len(res.Teams)})
	return nil
}

// Close disconnects from the broker.
func (p *PahoPublisher) Close() {
	p.cli.Disconnect(250)
}
