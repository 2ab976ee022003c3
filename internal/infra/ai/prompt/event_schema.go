package prompt

// eventSchemaJSON describes one event record as stored in the events table's
// JSONB payload. Both the query-synthesis and the report-rendering prompts
// embed this shape; keep it in sync with the actual event schema.
const eventSchemaJSON = `{
  "geo": {
    "ip": "string",
    "city": "string",
    "region": "string",
    "country": "string",
    "accuracy": "string",
    "latitude": number,
    "timezone": "string",
    "longitude": number,
    "countryCode": "string"
  },
  "url": "string",
  "meta": object,
  "path": "string",
  "duration": number,
  "hostname": "string",
  "language": "string",
  "referrer": "string",
  "connection": {
    "rtt": number,
    "downlink": number,
    "effectiveType": "string"
  },
  "screenSize": "string",
  "scrollDepth": number | null,
  "viewportSize": "string"
}`

// EventSchemaJSON exposes the event payload shape for contract tests.
func EventSchemaJSON() string { return eventSchemaJSON }
