// Package qr decodes the QR code URLs printed on paper lotto tickets.
//
// A ticket QR encodes a URL like
//
//	http://m.dhlottery.co.kr/?v=1105m010203040506n212223242526
//
// where the v parameter carries the round number, the letter m, and the
// purchased games: twelve digits per game (six two-digit numbers),
// separated by the letter n. The parser extracts the round and the game
// sets as printed; validating the numbers against the ball range is left
// to the commands that consume them.
package qr
