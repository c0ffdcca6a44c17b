package service

import (
	"crypto/md5"
	"encoding/hex"
)

// VisitorFingerprint 由来源 IP 与 User-Agent 推导固定长度的访客伪标识。
// 同一 NAT/代理出口后的访客会合并为同一标识，这是设计上接受的弱点。
func VisitorFingerprint(ip, userAgent string) string {
	sum := md5.Sum([]byte(ip + userAgent))
	return hex.EncodeToString(sum[:])
}
