// Package mqttfeed publishes fetched day prices to an MQTT broker so
// home-automation systems can consume them without polling the API.
package mqttfeed

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/angas/strompris-go/types"
)

const (
	connectTimeout = 10 * time.Second
	publishTimeout = 5 * time.Second
)

type Feed struct {
	mqttClient  mqtt.Client
	logger      *slog.Logger
	topicPrefix string
}

func New(broker string, port int16, username, password, topicPrefix string) *Feed {
	logger := slog.Default().With("module", "mqttfeed")
	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s:%d", broker, port))
	opts.SetClientID("strompris-go")
	opts.SetUsername(username)
	opts.SetPassword(password)
	opts.SetAutoReconnect(true)
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		logger.Warn("mqtt connection lost", slog.Any("error", err))
	})
	opts.SetOnConnectHandler(func(_ mqtt.Client) {
		logger.Info("mqtt connected", slog.String("broker", broker))
	})

	return &Feed{
		mqttClient:  mqtt.NewClient(opts),
		logger:      logger,
		topicPrefix: topicPrefix,
	}
}

func (f *Feed) Connect() error {
	token := f.mqttClient.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return fmt.Errorf("mqtt connect timed out")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt connect failed: %w", err)
	}
	return nil
}

func (f *Feed) Disconnect() {
	f.mqttClient.Disconnect(250)
}

type feedRecord struct {
	TimeStart string  `json:"time_start"`
	NOKPerKWh float64 `json:"NOK_per_kWh"`
}

// PublishDayPrices publishes one region's rows as a retained JSON
// message on <prefix>/<region>, so late subscribers get the last
// published day immediately.
func (f *Feed) PublishDayPrices(region types.Region, table types.PriceTable) error {
	records := make([]feedRecord, 0, len(table))
	for _, rec := range table {
		if rec.Region != region {
			continue
		}
		records = append(records, feedRecord{
			TimeStart: rec.TimeStart.Format(time.RFC3339),
			NOKPerKWh: rec.Price,
		})
	}

	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal price feed payload: %w", err)
	}

	topic := fmt.Sprintf("%s/%s", f.topicPrefix, region)
	token := f.mqttClient.Publish(topic, 0, true, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("mqtt publish to %s timed out", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt publish to %s failed: %w", topic, err)
	}

	f.logger.Debug("published day prices",
		slog.String("topic", topic),
		slog.Int("noOfHours", len(records)))

	return nil
}
