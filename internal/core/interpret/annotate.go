package interpret

import "fmt"

// Reply annotations are part of the text contract with the presentation layer.

func ChartAnnotation(fileName string) string {
	return "\n[Graph generated and available below:" + fileName + "]"
}

func RenderFailureAnnotation(err error) string {
	return fmt.Sprintf("\n[Graph generation failed: %v]", err)
}

func TransportFailureText(service string, err error) string {
	return fmt.Sprintf("Error calling %s or generating graph: %v", service, err)
}

func EmptyReplyText(service string) string {
	return "No response from " + service
}
