package webres

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
)

// ToLambda renders a Response into the API Gateway proxy envelope used by
// the serverless variant.
func ToLambda(resp *Response) (events.APIGatewayProxyResponse, error) {
	headers := resp.NormalizedHeaders()

	var contentType string
	var body string
	switch resp.Kind() {
	case KindText:
		contentType = "text/plain; charset=utf-8"
		body = resp.TextBody()
	case KindJSON:
		encoded, err := json.Marshal(resp.JSONBody())
		if err != nil {
			return events.APIGatewayProxyResponse{}, fmt.Errorf("marshal json body: %w", err)
		}
		contentType = "application/json; charset=utf-8"
		body = string(encoded)
	case KindHTML:
		var buf bytes.Buffer
		if err := resp.HTMLBody().Render(&buf); err != nil {
			return events.APIGatewayProxyResponse{}, fmt.Errorf("render html body: %w", err)
		}
		contentType = "text/html; charset=utf-8"
		body = buf.String()
	default:
		return events.APIGatewayProxyResponse{}, fmt.Errorf("unknown response kind %d", resp.Kind())
	}
	headers["content-type"] = append(headers["content-type"], contentType)

	return events.APIGatewayProxyResponse{
		StatusCode:        resp.Status(),
		MultiValueHeaders: headers,
		Body:              body,
	}, nil
}
