// Package share 生成模板的外部填写链接。
package share

import "strings"

// Generator 基于站点 Origin 派生分享链接。
//
// 链接是确定性的、可猜测的：持有模板 ID 的任何人都能构造出该 URL 并
// 对模板提交数据。没有访问控制、过期或签名——这是有意的简化取舍，
// 作为已记录的安全非目标保留，未经产品决策不做加固。
type Generator struct {
	baseURL string
}

// NewGenerator 构造分享链接生成器，baseURL 为站点 Origin。
func NewGenerator(baseURL string) *Generator {
	return &Generator{baseURL: strings.TrimRight(baseURL, "/")}
}

// Link 返回 <origin>/shared/template/<templateID>。
func (g *Generator) Link(templateID string) string {
	return g.baseURL + "/shared/template/" + templateID
}
