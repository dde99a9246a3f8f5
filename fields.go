package expressmock

import "fmt"

// Field names a property or method of the response, using the framework's
// own spelling. Any other Field value given as an override is passed through
// to MockResponse.Extra.
type Field string

// Layer is the part of the response's object model a field belongs to.
type Layer int

const (
	LayerEventEmitter Layer = iota
	LayerWritable
	LayerOutgoingMessage
	LayerServerResponse
	LayerResponse
)

func (l Layer) String() string {
	switch l {
	case LayerEventEmitter:
		return "events.EventEmitter"
	case LayerWritable:
		return "stream.Writable"
	case LayerOutgoingMessage:
		return "http.OutgoingMessage"
	case LayerServerResponse:
		return "http.ServerResponse"
	case LayerResponse:
		return "express.Response"
	default:
		return fmt.Sprintf("Layer(%d)", int(l))
	}
}

// Kind is the shape of a field's value.
type Kind int

const (
	// KindFunc fields are backed by a *mockfn.Fn.
	KindFunc Kind = iota
	KindBool
	KindInt
	KindString
	KindMap
	KindConn
	KindRequest
)

// FieldInfo describes one recognized field.
type FieldInfo struct {
	Name  Field
	Layer Layer
	Kind  Kind
	// Chainable fields return the response itself when invoked.
	Chainable bool
}

// Fields of express.Response.
const (
	FieldStatus      Field = "status"
	FieldSendStatus  Field = "sendStatus"
	FieldLinks       Field = "links"
	FieldSend        Field = "send"
	FieldJSON        Field = "json"
	FieldJSONP       Field = "jsonp"
	FieldSendFile    Field = "sendFile"
	FieldSendfile    Field = "sendfile"
	FieldDownload    Field = "download"
	FieldContentType Field = "contentType"
	FieldType        Field = "type"
	FieldFormat      Field = "format"
	FieldAttachment  Field = "attachment"
	FieldSet         Field = "set"
	FieldHeader      Field = "header"
	FieldHeadersSent Field = "headersSent"
	FieldGet         Field = "get"
	FieldClearCookie Field = "clearCookie"
	FieldCookie      Field = "cookie"
	FieldLocation    Field = "location"
	FieldRedirect    Field = "redirect"
	FieldRender      Field = "render"
	FieldLocals      Field = "locals"
	FieldCharset     Field = "charset"
	FieldVary        Field = "vary"
	FieldApp         Field = "app"
	FieldAppend      Field = "append"
	FieldReq         Field = "req"
)

// Fields of http.ServerResponse.
const (
	FieldStatusCode      Field = "statusCode"
	FieldStatusMessage   Field = "statusMessage"
	FieldAssignSocket    Field = "assignSocket"
	FieldDetachSocket    Field = "detachSocket"
	FieldWriteContinue   Field = "writeContinue"
	FieldWriteHead       Field = "writeHead"
	FieldWriteProcessing Field = "writeProcessing"
)

// Fields of http.OutgoingMessage.
const (
	FieldChunkedEncoding             Field = "chunkedEncoding"
	FieldShouldKeepAlive             Field = "shouldKeepAlive"
	FieldUseChunkedEncodingByDefault Field = "useChunkedEncodingByDefault"
	FieldSendDate                    Field = "sendDate"
	FieldFinished                    Field = "finished"
	FieldConnection                  Field = "connection"
	FieldSocket                      Field = "socket"
	FieldSetTimeout                  Field = "setTimeout"
	FieldSetHeader                   Field = "setHeader"
	FieldGetHeader                   Field = "getHeader"
	FieldGetHeaders                  Field = "getHeaders"
	FieldGetHeaderNames              Field = "getHeaderNames"
	FieldHasHeader                   Field = "hasHeader"
	FieldRemoveHeader                Field = "removeHeader"
	FieldAddTrailers                 Field = "addTrailers"
	FieldFlushHeaders                Field = "flushHeaders"
)

// Fields of stream.Writable.
const (
	FieldWritable              Field = "writable"
	FieldWritableEnded         Field = "writableEnded"
	FieldWritableFinished      Field = "writableFinished"
	FieldWritableHighWaterMark Field = "writableHighWaterMark"
	FieldWritableLength        Field = "writableLength"
	FieldWritableObjectMode    Field = "writableObjectMode"
	FieldWritableCorked        Field = "writableCorked"
	FieldDestroyed             Field = "destroyed"
	FieldRawWrite              Field = "_write"
	FieldRawWritev             Field = "_writev"
	FieldRawDestroy            Field = "_destroy"
	FieldRawFinal              Field = "_final"
	FieldWrite                 Field = "write"
	FieldSetDefaultEncoding    Field = "setDefaultEncoding"
	FieldEnd                   Field = "end"
	FieldCork                  Field = "cork"
	FieldUncork                Field = "uncork"
	FieldDestroy               Field = "destroy"
)

// Fields of events.EventEmitter.
const (
	FieldAddListener         Field = "addListener"
	FieldOn                  Field = "on"
	FieldOnce                Field = "once"
	FieldRemoveListener      Field = "removeListener"
	FieldOff                 Field = "off"
	FieldRemoveAllListeners  Field = "removeAllListeners"
	FieldSetMaxListeners     Field = "setMaxListeners"
	FieldGetMaxListeners     Field = "getMaxListeners"
	FieldListeners           Field = "listeners"
	FieldRawListeners        Field = "rawListeners"
	FieldEmit                Field = "emit"
	FieldListenerCount       Field = "listenerCount"
	FieldPrependListener     Field = "prependListener"
	FieldPrependOnceListener Field = "prependOnceListener"
	FieldEventNames          Field = "eventNames"
)

func fnField(name Field, l Layer) FieldInfo {
	return FieldInfo{Name: name, Layer: l, Kind: KindFunc}
}

func chainField(name Field, l Layer) FieldInfo {
	return FieldInfo{Name: name, Layer: l, Kind: KindFunc, Chainable: true}
}

func propField(name Field, l Layer, k Kind) FieldInfo {
	return FieldInfo{Name: name, Layer: l, Kind: k}
}

// fieldTable lists every recognized field once, outermost layer first. The
// chainable subset follows the framework's documentation of which methods
// return the response.
var fieldTable = []FieldInfo{
	chainField(FieldStatus, LayerResponse),
	chainField(FieldSendStatus, LayerResponse),
	chainField(FieldLinks, LayerResponse),
	chainField(FieldSend, LayerResponse),
	chainField(FieldJSON, LayerResponse),
	chainField(FieldJSONP, LayerResponse),
	fnField(FieldSendFile, LayerResponse),
	fnField(FieldSendfile, LayerResponse),
	fnField(FieldDownload, LayerResponse),
	chainField(FieldContentType, LayerResponse),
	chainField(FieldType, LayerResponse),
	chainField(FieldFormat, LayerResponse),
	chainField(FieldAttachment, LayerResponse),
	chainField(FieldSet, LayerResponse),
	chainField(FieldHeader, LayerResponse),
	propField(FieldHeadersSent, LayerResponse, KindBool),
	fnField(FieldGet, LayerResponse),
	chainField(FieldClearCookie, LayerResponse),
	chainField(FieldCookie, LayerResponse),
	chainField(FieldLocation, LayerResponse),
	fnField(FieldRedirect, LayerResponse),
	fnField(FieldRender, LayerResponse),
	propField(FieldLocals, LayerResponse, KindMap),
	propField(FieldCharset, LayerResponse, KindString),
	chainField(FieldVary, LayerResponse),
	propField(FieldApp, LayerResponse, KindMap),
	chainField(FieldAppend, LayerResponse),
	propField(FieldReq, LayerResponse, KindRequest),

	propField(FieldStatusCode, LayerServerResponse, KindInt),
	propField(FieldStatusMessage, LayerServerResponse, KindString),
	fnField(FieldAssignSocket, LayerServerResponse),
	fnField(FieldDetachSocket, LayerServerResponse),
	fnField(FieldWriteContinue, LayerServerResponse),
	chainField(FieldWriteHead, LayerServerResponse),
	fnField(FieldWriteProcessing, LayerServerResponse),

	propField(FieldChunkedEncoding, LayerOutgoingMessage, KindBool),
	propField(FieldShouldKeepAlive, LayerOutgoingMessage, KindBool),
	propField(FieldUseChunkedEncodingByDefault, LayerOutgoingMessage, KindBool),
	propField(FieldSendDate, LayerOutgoingMessage, KindBool),
	propField(FieldFinished, LayerOutgoingMessage, KindBool),
	propField(FieldConnection, LayerOutgoingMessage, KindConn),
	propField(FieldSocket, LayerOutgoingMessage, KindConn),
	chainField(FieldSetTimeout, LayerOutgoingMessage),
	fnField(FieldSetHeader, LayerOutgoingMessage),
	fnField(FieldGetHeader, LayerOutgoingMessage),
	fnField(FieldGetHeaders, LayerOutgoingMessage),
	fnField(FieldGetHeaderNames, LayerOutgoingMessage),
	fnField(FieldHasHeader, LayerOutgoingMessage),
	fnField(FieldRemoveHeader, LayerOutgoingMessage),
	fnField(FieldAddTrailers, LayerOutgoingMessage),
	fnField(FieldFlushHeaders, LayerOutgoingMessage),

	propField(FieldWritable, LayerWritable, KindBool),
	propField(FieldWritableEnded, LayerWritable, KindBool),
	propField(FieldWritableFinished, LayerWritable, KindBool),
	propField(FieldWritableHighWaterMark, LayerWritable, KindInt),
	propField(FieldWritableLength, LayerWritable, KindInt),
	propField(FieldWritableObjectMode, LayerWritable, KindBool),
	propField(FieldWritableCorked, LayerWritable, KindInt),
	propField(FieldDestroyed, LayerWritable, KindBool),
	fnField(FieldRawWrite, LayerWritable),
	fnField(FieldRawWritev, LayerWritable),
	fnField(FieldRawDestroy, LayerWritable),
	fnField(FieldRawFinal, LayerWritable),
	fnField(FieldWrite, LayerWritable),
	chainField(FieldSetDefaultEncoding, LayerWritable),
	fnField(FieldEnd, LayerWritable),
	fnField(FieldCork, LayerWritable),
	fnField(FieldUncork, LayerWritable),
	fnField(FieldDestroy, LayerWritable),

	chainField(FieldAddListener, LayerEventEmitter),
	chainField(FieldOn, LayerEventEmitter),
	chainField(FieldOnce, LayerEventEmitter),
	chainField(FieldRemoveListener, LayerEventEmitter),
	chainField(FieldOff, LayerEventEmitter),
	chainField(FieldRemoveAllListeners, LayerEventEmitter),
	chainField(FieldSetMaxListeners, LayerEventEmitter),
	fnField(FieldGetMaxListeners, LayerEventEmitter),
	fnField(FieldListeners, LayerEventEmitter),
	fnField(FieldRawListeners, LayerEventEmitter),
	fnField(FieldEmit, LayerEventEmitter),
	fnField(FieldListenerCount, LayerEventEmitter),
	chainField(FieldPrependListener, LayerEventEmitter),
	chainField(FieldPrependOnceListener, LayerEventEmitter),
	fnField(FieldEventNames, LayerEventEmitter),
}

var fieldIndex = map[Field]FieldInfo{}

func init() {
	for _, fi := range fieldTable {
		if _, dup := fieldIndex[fi.Name]; dup {
			panic(fmt.Sprintf("expressmock: field %q declared twice", fi.Name))
		}
		if _, ok := propSetters[fi.Name]; fi.Kind != KindFunc && !ok {
			panic(fmt.Sprintf("expressmock: field %q has no setter", fi.Name))
		}
		fieldIndex[fi.Name] = fi
	}
}

// Fields describes every field the mock response recognizes, in declaration
// order.
func Fields() []FieldInfo {
	return append([]FieldInfo(nil), fieldTable...)
}

// Lookup returns the description of a recognized field.
func Lookup(f Field) (FieldInfo, bool) {
	fi, ok := fieldIndex[f]
	return fi, ok
}
