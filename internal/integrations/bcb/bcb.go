package bcb

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/beevik/etree"
	"github.com/sirupsen/logrus"

	"github.com/alanaraujo-bit/meu-bolso-sub000/internal/config"
)

// selicSeriesCode is the SGS series for the Selic target rate (% a year).
const selicSeriesCode = 432

// Client handles integration with the Banco Central do Brasil SGS service
type Client struct {
	url    string
	client *http.Client
	log    *logrus.Logger
}

// NewClient initializes a new BCB client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		url: cfg.BCBURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// buildSOAPRequest creates a SOAP request for the latest value of a series
func (c *Client) buildSOAPRequest(series int) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>
		<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/" xmlns:fac="http://DefaultNamespace">
			<soapenv:Body>
				<fac:getUltimoValorVO>
					<fac:in0>%d</fac:in0>
				</fac:getUltimoValorVO>
			</soapenv:Body>
		</soapenv:Envelope>`, series)
}

// sendRequest sends a SOAP request to the SGS service
func (c *Client) sendRequest(soapRequest string) ([]byte, error) {
	req, err := http.NewRequest("POST", c.url, bytes.NewBuffer([]byte(soapRequest)))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", "getUltimoValorVO")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %v", err)
	}

	c.log.Debugf("BCB XML response: %s", string(body))

	return body, nil
}

// parseXMLResponse extracts the series value from the SOAP response
func (c *Client) parseXMLResponse(rawBody []byte) (float64, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(rawBody); err != nil {
		return 0, fmt.Errorf("failed to parse XML: %v", err)
	}

	valueElement := doc.FindElement("//ultimoValor/valor")
	if valueElement == nil {
		return 0, fmt.Errorf("no series value found in XML")
	}

	var rate float64
	if _, err := fmt.Sscanf(valueElement.Text(), "%f", &rate); err != nil {
		return 0, fmt.Errorf("failed to parse rate: %v", err)
	}

	return rate, nil
}

// CurrentSelicRate retrieves the current Selic target rate in % a year
func (c *Client) CurrentSelicRate() (float64, error) {
	soapRequest := c.buildSOAPRequest(selicSeriesCode)
	body, err := c.sendRequest(soapRequest)
	if err != nil {
		return 0, err
	}

	rate, err := c.parseXMLResponse(body)
	if err != nil {
		return 0, err
	}

	c.log.Infof("Retrieved Selic rate: %.2f%% a year", rate)
	return rate, nil
}
