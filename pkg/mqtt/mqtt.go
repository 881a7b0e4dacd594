package mqtt

import (
	"crypto/md5"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

type Client struct {
	client      paho.Client
	clientID    string
	topicPrefix string
	qos         byte
	retained    bool
	sampleRate  int
}

func NewClient(broker *url.URL, sampleRate int) *Client {
	c := &Client{}

	var urls []*url.URL
	urls = append(urls, broker)

	hostname, _ := os.Hostname()
	hostname = strings.Split(hostname, ".")[0]
	clientID := hostname
	if clientID == "" {
		now := time.Now().UnixNano()
		sum := md5.New().Sum([]byte(strconv.FormatInt(now, 10)))
		clientID = string(sum)
	}

	c.qos = 1
	c.topicPrefix = "smoothie/" + hostname
	c.clientID = clientID
	c.sampleRate = sampleRate

	slog.Info("connecting to mqtt", "url", broker, "clientid", clientID)
	c.client = paho.NewClient(&paho.ClientOptions{
		Servers:        urls,
		ClientID:       clientID,
		ConnectRetry:   true,
		ConnectTimeout: 30 * time.Second,
	})

	return c
}

func (c *Client) Connect() error {
	if token := c.client.Connect(); token.Wait() && token.Error() != nil {
		slog.Error("mqtt connection failed", "error", token.Error())
		return token.Error()
	}
	return nil
}

// GetPublisher returns a pipeline stage that publishes the raw signal,
// the smoothed signal and the windowed standard deviation, each
// downsampled to every Nth reading. The stage ends when all inputs
// have drained.
func (c *Client) GetPublisher(rawChan, smoothChan, stddevChan <-chan float64) func() error {
	rawSample := NewSample(c.sampleRate)
	smoothSample := NewSample(c.sampleRate)
	stddevSample := NewSample(c.sampleRate)

	return func() error {
		for rawChan != nil || smoothChan != nil || stddevChan != nil {
			select {
			case raw, ok := <-rawChan:
				if !ok {
					rawChan = nil
					continue
				}
				if !rawSample.Ready() {
					continue
				}
				slog.Debug("mqtt publishing", "field", "raw", "value", raw)
				c.Publish(c.topicPrefix+"/raw", strconv.FormatFloat(raw, 'f', 5, 64))
			case smooth, ok := <-smoothChan:
				if !ok {
					smoothChan = nil
					continue
				}
				if !smoothSample.Ready() {
					continue
				}
				slog.Debug("mqtt publishing", "field", "smoothed", "value", smooth)
				c.Publish(c.topicPrefix+"/smoothed", strconv.FormatFloat(smooth, 'f', 5, 64))
			case stddev, ok := <-stddevChan:
				if !ok {
					stddevChan = nil
					continue
				}
				if !stddevSample.Ready() {
					continue
				}
				slog.Debug("mqtt publishing", "field", "stddev", "value", stddev)
				c.Publish(c.topicPrefix+"/stddev", strconv.FormatFloat(stddev, 'f', 5, 64))
			}
		}
		return nil
	}
}

func (p *Client) Publish(topic string, msg string) {
	t := p.client.Publish(topic, p.qos, p.retained, msg)
	go func() {
		_ = t.WaitTimeout(5 * time.Second)
		if t.Error() != nil {
			slog.Error("mqtt message publish failed", "error", t.Error())
		}
	}()
}
