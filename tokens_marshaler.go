package tomlx

import (
	"bytes"
	"io"
	"reflect"
	"sync"

	"github.com/hummerd/tomlx/scanner"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/bson/bsonrw"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

var (
	bvwPool  = bsonrw.NewBSONValueWriterPool()
	buffPool = sync.Pool{New: func() interface{} {
		return &bytes.Buffer{}
	}}
)

// MarshalledDocument is a BSON document backed by a pooled buffer.
type MarshalledDocument struct {
	bsonData *bytes.Buffer
}

// MarshalBSON just returns marshalled bson document.
func (d MarshalledDocument) MarshalBSON() ([]byte, error) {
	return d.bsonData.Bytes(), nil
}

// MarshalBSONValue returns marshalled bson document as embedded document value.
func (d MarshalledDocument) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bsontype.EmbeddedDocument, d.bsonData.Bytes(), nil
}

// Close returns marshal buffer to internal pool and returns nil.
func (d MarshalledDocument) Close() error {
	d.bsonData.Reset()
	buffPool.Put(d.bsonData)
	return nil
}

// MarshalTokens creates bson document {tokens: [{kind, text|value, line, column}]}.
func MarshalTokens(tokens []scanner.TokenWithLocation) (MarshalledDocument, error) {
	return MarshalSource(scanner.NewFake(tokens...))
}

// MarshalSource writes tokens as they are read from src, so scanner text is
// consumed before the next call. When src fails with *scanner.Error the
// diagnostic is stored in the "error" element and no error is returned.
func MarshalSource(src scanner.TokenSource) (MarshalledDocument, error) {
	return marshal(func(wc writeContext) error {
		return encodeSource(wc, src)
	})
}

// MarshalDiagnostic creates bson document {line, column, message}.
func MarshalDiagnostic(d scanner.Diagnostic) (MarshalledDocument, error) {
	return marshal(func(wc writeContext) error {
		return encodeDiagnosticFields(wc, d)
	})
}

type writeContext struct {
	ec bsoncodec.EncodeContext
	dw bsonrw.DocumentWriter
}

func marshal(fields func(wc writeContext) error) (MarshalledDocument, error) {
	buff := buffPool.Get().(*bytes.Buffer)
	buff.Reset()

	vw := bvwPool.Get(buff)
	defer bvwPool.Put(vw)

	dw, err := vw.WriteDocument()
	if err == nil {
		err = fields(writeContext{
			ec: bsoncodec.EncodeContext{Registry: bson.DefaultRegistry},
			dw: dw,
		})
	}
	if err == nil {
		err = dw.WriteDocumentEnd()
	}

	if err != nil {
		buffPool.Put(buff)
		return MarshalledDocument{}, errors.Wrap(err, "marshal bson")
	}

	return MarshalledDocument{buff}, nil
}

func encodeSource(wc writeContext, src scanner.TokenSource) error {
	vw, err := wc.dw.WriteDocumentElement("tokens")
	if err != nil {
		return err
	}

	aw, err := vw.WriteArray()
	if err != nil {
		return err
	}

	var scanErr *scanner.Error

	for {
		t, err := src.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}

			if errors.As(err, &scanErr) {
				break
			}

			return err
		}

		vw, err := aw.WriteArrayElement()
		if err != nil {
			return err
		}

		err = encodeToken(wc.ec, vw, t)
		if err != nil {
			return err
		}
	}

	err = aw.WriteArrayEnd()
	if err != nil {
		return err
	}

	if scanErr == nil {
		return nil
	}

	vw, err = wc.dw.WriteDocumentElement("error")
	if err != nil {
		return err
	}

	dw, err := vw.WriteDocument()
	if err != nil {
		return err
	}

	err = encodeDiagnosticFields(writeContext{ec: wc.ec, dw: dw}, scanErr.Diagnostic)
	if err != nil {
		return err
	}

	return dw.WriteDocumentEnd()
}

func encodeToken(ec bsoncodec.EncodeContext, vw bsonrw.ValueWriter, t scanner.TokenWithLocation) error {
	dw, err := vw.WriteDocument()
	if err != nil {
		return err
	}

	err = encodeElement(ec, dw, "kind", t.Token.Kind.String())
	if err != nil {
		return err
	}

	switch t.Token.Kind {
	case scanner.KKey, scanner.KString:
		err = encodeElement(ec, dw, "text", string(t.Token.Text))
	case scanner.KInteger:
		err = encodeElement(ec, dw, "value", t.Token.Integer)
	case scanner.KFloat:
		err = encodeElement(ec, dw, "value", t.Token.Float)
	case scanner.KBoolean:
		err = encodeElement(ec, dw, "value", t.Token.Boolean)
	}
	if err != nil {
		return err
	}

	err = encodeLocation(ec, dw, t.Location)
	if err != nil {
		return err
	}

	return dw.WriteDocumentEnd()
}

func encodeDiagnosticFields(wc writeContext, d scanner.Diagnostic) error {
	err := encodeLocation(wc.ec, wc.dw, d.Location)
	if err != nil {
		return err
	}

	return encodeElement(wc.ec, wc.dw, "message", d.Message)
}

func encodeLocation(ec bsoncodec.EncodeContext, dw bsonrw.DocumentWriter, l scanner.Location) error {
	err := encodeElement(ec, dw, "line", int64(l.Line))
	if err != nil {
		return err
	}

	return encodeElement(ec, dw, "column", int64(l.Column))
}

func encodeElement(ec bsoncodec.EncodeContext, dw bsonrw.DocumentWriter, key string, v interface{}) error {
	vw, err := dw.WriteDocumentElement(key)
	if err != nil {
		return err
	}

	encoder, err := ec.LookupEncoder(reflect.TypeOf(v))
	if err != nil {
		return err
	}

	return encoder.EncodeValue(ec, vw, reflect.ValueOf(v))
}
