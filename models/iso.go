package models

// ISOMillis is the timestamp layout used for every instant in API payloads
// and stored rows: ISO-8601 UTC with millisecond precision.
const ISOMillis = "2006-01-02T15:04:05.000Z"
