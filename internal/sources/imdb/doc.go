// Package imdb fetches and parses ceremony data from the IMDb event pages.
// The event site has served two page generations over the years: a classic
// widget payload inlined into an article div, and the current Next.js data
// script. Both carry the same nominee structure and both parse into the same
// records. Fetched payloads are cached on disk per edition so a full rebuild
// touches the network only for editions never seen before.
package imdb
