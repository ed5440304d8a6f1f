package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit     key.Binding
	Refresh  key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	First    key.Binding
	Last     key.Binding
	Up       key.Binding
	Down     key.Binding
	NextCol  key.Binding
	PrevCol  key.Binding
	Open     key.Binding
	Close    key.Binding
	Export   key.Binding
	Copy     key.Binding
	Logs     key.Binding
	Help     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "退出")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "刷新/重试")),
		PrevPage: key.NewBinding(key.WithKeys("left", "p"), key.WithHelp("←/p", "上一页")),
		NextPage: key.NewBinding(key.WithKeys("right", "n"), key.WithHelp("→/n", "下一页")),
		First:    key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("home", "首页")),
		Last:     key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("end", "末页")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "上移")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "下移")),
		NextCol:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "下一列")),
		PrevCol:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "上一列")),
		Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "详情")),
		Close:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "关闭")),
		Export:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "导出CSV")),
		Copy:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "复制推荐")),
		Logs:     key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "日志")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "帮助")),
	}
}

// ShortHelp реализует help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevPage, k.NextPage, k.Open, k.Export, k.Copy, k.Refresh, k.Help, k.Quit}
}

// FullHelp реализует help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextCol, k.PrevCol},
		{k.PrevPage, k.NextPage, k.First, k.Last},
		{k.Open, k.Close, k.Export, k.Copy},
		{k.Refresh, k.Logs, k.Help, k.Quit},
	}
}
