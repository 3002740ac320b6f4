package tokens

import (
	"errors"
	"fmt"
)

func encodeJWTSection(section any) (string, error) {
	sectionJSON, err := compactJSON(section)
	if err != nil {
		return "", fmt.Errorf("json marshal failure: %v", err)
	}
	return EncodeSegment(sectionJSON), nil
}

func encodeToken(
	header Header,
	payload Payload,
	signer *Signer,
) (string, error) {
	if header == nil {
		return "", errors.New("failed to encode header: missing header")
	}
	if payload == nil {
		return "", errors.New("failed to encode payload: missing payload")
	}

	encHeader, err := encodeJWTSection(header)
	if err != nil {
		return "", fmt.Errorf("failed to encode header: %v", err)
	}

	payloadBytes, err := payload.payloadBytes()
	if err != nil {
		return "", fmt.Errorf("failed to encode payload: %v", err)
	}
	encPayload := EncodeSegment(payloadBytes)

	encSignature := signer.Sign(encHeader, encPayload)
	return fmt.Sprintf("%s.%s", buildMessage(encHeader, encPayload), encSignature), nil
}
