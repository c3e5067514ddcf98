package credential

import (
	"encoding/binary"
	"unicode/utf16"
)

// SQLCoptSSAccessToken is the SQL Server ODBC pre-connection attribute key
// for supplying an Azure AD access token (SQL_COPT_SS_ACCESS_TOKEN).
const SQLCoptSSAccessToken = 1256

// EncodeAccessToken converts a bearer token into the byte layout the SQL
// Server ODBC driver expects for SQL_COPT_SS_ACCESS_TOKEN: a little-endian
// uint32 byte length followed by the token in UTF-16-LE.
func EncodeAccessToken(token string) []byte {
	units := utf16.Encode([]rune(token))
	buf := make([]byte, 4+2*len(units))
	binary.LittleEndian.PutUint32(buf, uint32(2*len(units)))
	for i, u := range units {
		binary.LittleEndian.PutUint16(buf[4+2*i:], u)
	}
	return buf
}

// AccessTokenAttrs returns the pre-connection attribute map for drivers that
// accept raw ODBC connect attributes.
func AccessTokenAttrs(token string) map[int][]byte {
	return map[int][]byte{
		SQLCoptSSAccessToken: EncodeAccessToken(token),
	}
}
