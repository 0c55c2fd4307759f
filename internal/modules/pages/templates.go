package pages

import "html/template"

// Templates returns the page template set for gin's SetHTMLTemplate.
// The UI proper is a static frontend; these pages only carry the player
// shell, the auth forms and the injected demo/user context.
func Templates() *template.Template {
	return template.Must(template.New("pages").Parse(pageTemplates))
}

const pageTemplates = `
{{define "index.html"}}<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>Radio Player</title>
</head>
<body data-demo-url="{{.DemoStation.URL}}" data-demo-name="{{.DemoStation.Name}}">
  <header>
    <h1>Radio Player</h1>
    <nav>
      {{if .User}}
        <span>Signed in as {{.User.Username}}</span>
        <a href="/logout">Log out</a>
      {{else}}
        <a href="/login">Log in</a>
        <a href="/signup">Sign up</a>
      {{end}}
    </nav>
  </header>
  <main id="app"></main>
  <audio id="player" src="{{.DemoStation.URL}}" preload="none" controls></audio>
</body>
</html>{{end}}

{{define "signup.html"}}<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Sign up — Radio Player</title></head>
<body>
  <h1>Sign up</h1>
  {{if .Error}}<p class="error">{{.Error}}</p>{{end}}
  <form method="post" action="/signup">
    <label>Username <input name="username" required minlength="3"></label>
    <label>Password <input name="password" type="password" required></label>
    <button type="submit">Create account</button>
  </form>
  <p>Already have an account? <a href="/login">Log in</a></p>
</body>
</html>{{end}}

{{define "login.html"}}<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Log in — Radio Player</title></head>
<body>
  <h1>Log in</h1>
  {{if .Error}}<p class="error">{{.Error}}</p>{{end}}
  <form method="post" action="/login">
    <label>Username <input name="username" required></label>
    <label>Password <input name="password" type="password" required></label>
    <button type="submit">Log in</button>
  </form>
  <p>No account yet? <a href="/signup">Sign up</a></p>
</body>
</html>{{end}}
`
