// Package blueprint converts between blueprint strings and JSON documents.
//
// A blueprint string is the text players exchange with the game: a single
// version character followed by base64 of a zlib stream that inflates to
// UTF-8 JSON.
//
// Wire Format:
//
//	'0' + base64(zlib(utf8(json)))
//
// Decoding:
//  1. Strip exactly one leading '0' (strings without it are legacy input)
//  2. Base64-decode (padding optional)
//  3. Inflate (zlib framing, raw DEFLATE accepted as a fallback)
//  4. Validate and compact the JSON, keeping key order and number literals
//
// Encoding always emits the version character.
//
// Example:
//
//	codec := blueprint.NewCodec()
//	doc, err := codec.Decode(input)
//	out, err := codec.Encode(doc)
package blueprint
