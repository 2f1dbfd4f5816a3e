/*
Package codec implements ports.Codec for mission fragments.

Three formats are provided:

  - Binary: protobuf wire format, used for drag payloads and swap snapshots.
  - JSON: indented JSON with protobuf field names, used for saved documents.
  - YAML: the same structure rendered as YAML.

A Registry maps format names and file extensions to codecs.
*/
package codec
