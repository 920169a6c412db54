/*
Package codec isolates the bus from any one wire format. A Codec turns Go
values into transport bytes and back; the rest of this module only ever
talks to a Codec, never to encoding/json directly.

The contract every Codec implementation must satisfy:

  - Encode(Decode(b, &v)) round-trips: decoding then re-encoding a value
    produces semantically the same bytes.
  - event.Empty encodes to the zero-length byte string, and the
    zero-length byte string decodes back into event.Empty — the "no
    payload"/"no metadata"/"no reply" case never touches the wire format.
  - ParseHeaders coerces a string-keyed, string-valued transport header map
    into a metadata value; a Codec that cannot represent headers this way
    still accepts an empty map for event.Empty metadata.

JSONCodec is the only implementation in this package, grounded on the
teacher's plain encoding/json usage elsewhere in the tree and on
synopsys/adapters/codecs/json.py's empty-value special-casing.
*/
package codec
