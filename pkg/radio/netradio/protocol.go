package netradio

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/blelink/blelink-go/pkg/radio"
)

// Service discovery constants.
const (
	ServiceType = "_blelink._tcp"
	Domain      = "local"

	txtService        = "svc"
	txtCharacteristic = "chr"
)

type op uint8

const (
	opDiscover op = 1
	opRead     op = 2
	opWrite    op = 3
)

type status uint8

const (
	statusOK          status = 0
	statusNotFound    status = 1
	statusUnsupported status = 2
)

const (
	capRead  = 1 << 0
	capWrite = 1 << 1
)

var errBadResponse = errors.New("malformed response")

func (s status) err() error {
	switch s {
	case statusOK:
		return nil
	case statusNotFound:
		return radio.ErrNotFound
	case statusUnsupported:
		return radio.ErrUnsupported
	default:
		return fmt.Errorf("%w: status %d", errBadResponse, s)
	}
}

func encodeCaps(c radio.Capabilities) byte {
	var b byte
	if c.Read {
		b |= capRead
	}
	if c.Write {
		b |= capWrite
	}
	return b
}

func decodeCaps(b byte) radio.Capabilities {
	return radio.Capabilities{Read: b&capRead != 0, Write: b&capWrite != 0}
}

func discoverBody(service, char uuid.UUID) []byte {
	body := make([]byte, 0, 32)
	body = append(body, service[:]...)
	return append(body, char[:]...)
}

func parseDiscoverBody(body []byte) (service, char uuid.UUID, err error) {
	if len(body) != 32 {
		return uuid.Nil, uuid.Nil, fmt.Errorf("%w: discover body %d bytes", errBadResponse, len(body))
	}
	copy(service[:], body[:16])
	copy(char[:], body[16:])
	return service, char, nil
}

// txtRecords returns the TXT strings advertised with the service.
func txtRecords() []string {
	return []string{
		txtService + "=" + radio.ServiceUUID.String(),
		txtCharacteristic + "=" + radio.CharacteristicUUID.String(),
	}
}

// matchesProtocol reports whether TXT strings carry the protocol UUIDs.
func matchesProtocol(text []string) bool {
	var svc, chr bool
	for _, s := range text {
		switch s {
		case txtService + "=" + radio.ServiceUUID.String():
			svc = true
		case txtCharacteristic + "=" + radio.CharacteristicUUID.String():
			chr = true
		}
	}
	return svc && chr
}
